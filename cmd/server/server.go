package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/config"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/middleware"
	"github.com/mmynk/messbook/internal/service"
	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/pkg/api"
)

// rpcPrefix is shared by every Connect procedure path.
const rpcPrefix = "/messbook.v1."

type deps struct {
	cfg           *config.Config
	logger        *slog.Logger
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	publisher     events.Publisher
	metrics       *metrics.Metrics
	gatherer      prometheus.Gatherer
}

// newHandler registers the Connect services, metrics, health check and static
// files, and wraps them in the HTTP middleware chain.
func newHandler(d deps) (http.Handler, error) {
	mux := http.NewServeMux()

	rpcLogging := middleware.LoggingInterceptor(d.logger)
	mux.Handle(api.NewAuthServiceHandler(
		service.NewAuthService(d.authenticator, d.jwtManager, d.logger),
		connect.WithInterceptors(d.metrics.Interceptor(), rpcLogging),
	))
	mux.Handle(api.NewLedgerServiceHandler(
		service.NewLedgerService(d.store, d.publisher, d.metrics, d.logger),
		connect.WithInterceptors(d.metrics.Interceptor(), middleware.RequireRole(d.jwtManager, auth.RoleMember), rpcLogging),
	))
	mux.Handle(api.NewAdminServiceHandler(
		service.NewAdminService(d.store, d.authenticator, d.publisher, d.metrics, d.logger),
		connect.WithInterceptors(d.metrics.Interceptor(), middleware.RequireRole(d.jwtManager, auth.RoleAdmin), rpcLogging),
	))

	mux.Handle(d.cfg.MetricsPath, promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	staticDir, err := filepath.Abs(d.cfg.StaticPath)
	if err != nil {
		return nil, fmt.Errorf("resolve static path: %w", err)
	}
	d.logger.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	limiter := middleware.NewRateLimiter(d.cfg.RateLimitRPS, d.cfg.RateLimitBurst)
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(d.logger),
		middleware.CORS,
		limiter.Middleware,
	), nil
}

// staticHandler serves the web client, falling back to index.html for unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, rpcPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}
