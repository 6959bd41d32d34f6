package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/middleware"
	"github.com/mmynk/messbook/internal/storage/sqlite"
	"github.com/mmynk/messbook/pkg/api"
	"github.com/mmynk/messbook/pkg/logging"
)

const (
	testSecret   = "test-secret-key-that-is-32-bytes!"
	testPasscode = "correct-horse"
)

var march = api.Period{Month: 3, Year: 2024}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) kinds() []events.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]events.Kind, len(p.events))
	for i, e := range p.events {
		kinds[i] = e.Kind
	}
	return kinds
}

type testEnv struct {
	auth      *api.AuthServiceClient
	ledger    *api.LedgerServiceClient
	admin     *api.AdminServiceClient
	authn     *auth.PasscodeAuthenticator
	publisher *recordingPublisher
}

// setupTestServer wires every service behind an httptest server the way cmd/server does.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "messbook-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := logging.Discard()
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	authn := auth.NewPasscodeAuthenticator(store, auth.NewLockout(3, time.Minute))
	m := metrics.New(prometheus.NewRegistry())
	publisher := &recordingPublisher{}

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(
		NewAuthService(authn, jwtManager, logger),
		connect.WithInterceptors(m.Interceptor(), middleware.LoggingInterceptor(logger)),
	))
	mux.Handle(api.NewLedgerServiceHandler(
		NewLedgerService(store, publisher, m, logger),
		connect.WithInterceptors(m.Interceptor(), middleware.RequireRole(jwtManager, auth.RoleMember), middleware.LoggingInterceptor(logger)),
	))
	mux.Handle(api.NewAdminServiceHandler(
		NewAdminService(store, authn, publisher, m, logger),
		connect.WithInterceptors(m.Interceptor(), middleware.RequireRole(jwtManager, auth.RoleAdmin), middleware.LoggingInterceptor(logger)),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		auth:      api.NewAuthServiceClient(http.DefaultClient, server.URL),
		ledger:    api.NewLedgerServiceClient(http.DefaultClient, server.URL),
		admin:     api.NewAdminServiceClient(http.DefaultClient, server.URL),
		authn:     authn,
		publisher: publisher,
	}
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func (e *testEnv) memberToken(t *testing.T, name string) (int64, string) {
	t.Helper()
	ctx := context.Background()
	if _, err := e.authn.RegisterMember(ctx, name, testPasscode); err != nil {
		t.Fatalf("RegisterMember(%s) failed: %v", name, err)
	}
	resp, err := e.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Name: name, Passcode: testPasscode}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", name, err)
	}
	return resp.Msg.Member.ID, resp.Msg.Token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	if _, err := e.authn.RegisterAdmin(ctx, "root", testPasscode); err != nil {
		t.Fatalf("RegisterAdmin failed: %v", err)
	}
	resp, err := e.auth.AdminLogin(ctx, connect.NewRequest(&api.AdminLoginRequest{Name: "root", Passcode: testPasscode}))
	if err != nil {
		t.Fatalf("AdminLogin failed: %v", err)
	}
	return resp.Msg.Token
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("code = %v, want %v (err: %v)", got, want, err)
	}
}
