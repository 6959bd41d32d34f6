package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/config"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/storage/sqlite"
	"github.com/mmynk/messbook/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Initialize SQLite storage; migrations run on open.
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasscodeAuthenticator(store, auth.NewLockout(cfg.LoginMaxAttempts, cfg.LoginLockout))

	if err := bootstrapAdmin(ctx, authenticator, cfg, logger); err != nil {
		return err
	}

	publisher := connectPublisher(ctx, cfg, logger)
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := newHandler(deps{
		cfg:           cfg,
		logger:        logger,
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		publisher:     publisher,
		metrics:       metrics.New(registry),
		gatherer:      registry,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		// h2c serves HTTP/2 without TLS, which Connect clients use.
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// bootstrapAdmin creates the administrator named in the environment if it does not exist yet.
func bootstrapAdmin(ctx context.Context, authenticator auth.Authenticator, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminName == "" {
		return nil
	}
	admin, err := authenticator.RegisterAdmin(ctx, cfg.AdminName, cfg.AdminPasscode)
	switch {
	case errors.Is(err, auth.ErrNameTaken):
		logger.Debug("Bootstrap admin already exists", "name", cfg.AdminName)
		return nil
	case err != nil:
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Info("Bootstrap admin created", "admin_id", admin.ID, "name", admin.Name)
	return nil
}

// connectPublisher dials the event broker when one is configured. The server runs
// without events if the broker is unreachable.
func connectPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		logger.Info("Event publishing disabled")
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPDialAttempts, logger)
	if err != nil {
		logger.Warn("Event broker unavailable, continuing without events", "error", err)
		return events.NopPublisher{}
	}
	logger.Info("Publishing events", "exchange", cfg.AMQPExchange)
	return publisher
}
