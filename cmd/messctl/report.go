package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/calculator"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/service"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the settlement for a month",
		Long: `Compute the settlement for one month: the price of a meal, what every
member paid and ate, their balance, and the payments that would settle it.

Positive balances are owed to the member; negative balances are owed by them.`,
		RunE: runSummary,
	}
	cmd.Flags().String("period", time.Now().Format("2006-01"), "month to settle, as YYYY-MM")
	return cmd
}

func periodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List months that have expenses or meals",
		RunE:  runPeriods,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE:  runMigrate,
	}
}

func runSummary(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("period")
	period, err := models.ParsePeriod(raw)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := service.Summarize(cmd.Context(), store, period)
	if err != nil {
		return fmt.Errorf("failed to compute settlement: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Period %s: total %.2f over %d meals, %.2f per meal\n\n",
		report.Period, report.TotalExpenses, report.TotalMeals, report.PerMealPrice)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "MEMBER\tPAID\tMEALS\tMEAL COST\tBALANCE\t")
	names := make(map[int64]string, len(report.Entries))
	for _, e := range report.Entries {
		names[e.MemberID] = e.MemberName
		fmt.Fprintf(w, "%s\t%.2f\t%d\t%.2f\t%+.2f\t\n", e.MemberName, e.TotalExpenses, e.TotalMeals, e.MealCost, e.Balance)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	transfers := calculator.SuggestTransfers(report)
	if len(transfers) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nSuggested transfers:")
	for _, t := range transfers {
		fmt.Fprintf(out, "  %s pays %s %.2f\n", names[t.FromMemberID], names[t.ToMemberID], t.Amount)
	}
	return nil
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	periods, err := store.ListPeriods(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list periods: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(periods) == 0 {
		fmt.Fprintln(out, "No data recorded yet.")
		return nil
	}
	for _, p := range periods {
		fmt.Fprintln(out, p)
	}
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	slog.Info("Running migrations", "database", dbPath)

	// Opening the store creates the database and applies pending migrations.
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", dbPath)
	return nil
}
