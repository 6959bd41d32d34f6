// Command messctl administers a messbook database directly: roster and
// administrator accounts, monthly summaries and schema migrations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/config"
	"github.com/mmynk/messbook/internal/storage/sqlite"
	"github.com/mmynk/messbook/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "messctl",
		Short:         "Administer a messbook database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Setup(level, cfg.LogFormat)
		},
	}

	root.PersistentFlags().String("db", cfg.DBPath, "path to the SQLite database (env DB_PATH)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		memberCmd(),
		adminCmd(),
		summaryCmd(),
		periodsCmd(),
		migrateCmd(),
	)
	return root
}

// openStore opens the database named by the --db flag, migrating it if needed.
func openStore(cmd *cobra.Command) (*sqlite.SQLiteStore, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}
