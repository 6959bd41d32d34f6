package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/config"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/storage/sqlite"
	"github.com/mmynk/messbook/pkg/api"
	"github.com/mmynk/messbook/pkg/logging"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	tempDir := t.TempDir()
	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	staticDir := filepath.Join(tempDir, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>messbook</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	cfg.StaticPath = staticDir

	registry := prometheus.NewRegistry()
	logger := logging.Discard()
	authenticator := auth.NewPasscodeAuthenticator(store, nil)
	if err := bootstrapAdmin(context.Background(), authenticator, cfg, logger); err != nil {
		t.Fatalf("bootstrapAdmin: %v", err)
	}

	handler, err := newHandler(deps{
		cfg:           cfg,
		logger:        logger,
		store:         store,
		authenticator: authenticator,
		jwtManager:    auth.NewJWTManager(cfg.JWTSecret, time.Hour),
		publisher:     events.NopPublisher{},
		metrics:       metrics.New(registry),
		gatherer:      registry,
	})
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func testConfig() *config.Config {
	return &config.Config{
		MetricsPath:   "/metrics",
		JWTSecret:     "test-secret-key-that-is-32-bytes!",
		AdminName:     "root",
		AdminPasscode: "correct-horse",
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestHealthzAndRequestID(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp, body := get(t, server.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestStaticFallback(t *testing.T) {
	server := newTestServer(t, testConfig())

	for _, path := range []string{"/", "/some/page"} {
		resp, body := get(t, server.URL+path)
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, "messbook") {
			t.Errorf("GET %s = %d %q, want index page", path, resp.StatusCode, body)
		}
	}

	resp, _ := get(t, server.URL+"/messbook.v1.Unknown/Method")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown RPC path = %d, want 404", resp.StatusCode)
	}
}

func TestBootstrapAdminAndMetrics(t *testing.T) {
	cfg := testConfig()
	server := newTestServer(t, cfg)
	ctx := context.Background()

	client := api.NewAuthServiceClient(http.DefaultClient, server.URL)
	resp, err := client.AdminLogin(ctx, connect.NewRequest(&api.AdminLoginRequest{Name: cfg.AdminName, Passcode: cfg.AdminPasscode}))
	if err != nil {
		t.Fatalf("AdminLogin as bootstrap admin failed: %v", err)
	}

	admin := api.NewAdminServiceClient(http.DefaultClient, server.URL)
	req := connect.NewRequest(&api.GetSummaryRequest{Period: api.Period{Month: 1, Year: 2024}})
	req.Header().Set("Authorization", "Bearer "+resp.Msg.Token)
	if _, err := admin.GetSummary(ctx, req); err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	_, body := get(t, server.URL+"/metrics")
	for _, want := range []string{
		`messbook_rpc_requests_total{code="ok",procedure="/messbook.v1.AdminService/GetSummary"} 1`,
		"messbook_settlements_computed_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	authenticator := auth.NewPasscodeAuthenticator(store, nil)
	cfg := testConfig()
	for i := 0; i < 2; i++ {
		if err := bootstrapAdmin(context.Background(), authenticator, cfg, logging.Discard()); err != nil {
			t.Fatalf("bootstrapAdmin run %d: %v", i+1, err)
		}
	}

	cfg.AdminName = ""
	if err := bootstrapAdmin(context.Background(), authenticator, cfg, logging.Discard()); err != nil {
		t.Errorf("bootstrapAdmin without admin: %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 2
	server := newTestServer(t, cfg)

	var limited bool
	for i := 0; i < 5; i++ {
		resp, _ := get(t, server.URL+"/healthz")
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected a 429 after exceeding the burst")
	}
}
