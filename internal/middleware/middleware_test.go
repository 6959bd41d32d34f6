package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/messbook/internal/auth"
)

const testSecret = "test-secret-key-that-is-32-bytes!"

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def", "abc.def", nil},
		{"", "", auth.ErrMissingToken},
		{"Basic abc", "", auth.ErrInvalidToken},
		{"Bearer", "", auth.ErrInvalidToken},
		{"Bearer ", "", auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		got, err := bearerToken(tt.header)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "header %q", tt.header)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetPrincipal(ctx))
	assert.Zero(t, GetMemberID(ctx))

	member := WithPrincipal(ctx, &auth.Principal{ID: 4, Name: "asha", Role: auth.RoleMember})
	assert.Equal(t, int64(4), GetMemberID(member))

	admin := WithPrincipal(ctx, &auth.Principal{ID: 1, Name: "root", Role: auth.RoleAdmin})
	assert.Equal(t, "root", GetPrincipal(admin).Name)
	assert.Zero(t, GetMemberID(admin), "admins are not members")
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("inbound uuid kept", func(t *testing.T) {
		const id = "3f2c7a9e-5b1d-4c8e-9a7f-2d6b8e1c0f43"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, id, seen)
	})

	t.Run("inbound garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.NotEqual(t, "<script>", seen)
		assert.Len(t, seen, 36)
	})
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called, "preflight must not reach the handler")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(1, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "other clients have their own bucket")

	disabled := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, disabled.Allow("10.0.0.1"))
	}

	var nilLimiter *RateLimiter
	assert.True(t, nilLimiter.Allow("10.0.0.1"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	h := NewRateLimiter(1, 1).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") }),
		mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type pingRequest struct{}
type pingResponse struct{}

func TestRequireRole(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	memberToken, err := jwtManager.Generate(&auth.Principal{ID: 2, Name: "asha", Role: auth.RoleMember})
	require.NoError(t, err)
	adminToken, err := jwtManager.Generate(&auth.Principal{ID: 1, Name: "root", Role: auth.RoleAdmin})
	require.NoError(t, err)

	interceptor := RequireRole(jwtManager, auth.RoleMember)
	var reached *auth.Principal
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		reached = GetPrincipal(ctx)
		return connect.NewResponse(&pingResponse{}), nil
	})
	call := interceptor(next)

	tests := []struct {
		name   string
		header string
		code   connect.Code
	}{
		{"member", "Bearer " + memberToken, 0},
		{"admin", "Bearer " + adminToken, connect.CodePermissionDenied},
		{"missing", "", connect.CodeUnauthenticated},
		{"tampered", "Bearer " + memberToken + "x", connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = nil
			req := connect.NewRequest(&pingRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := call(context.Background(), req)
			if tt.code == 0 {
				require.NoError(t, err)
				require.NotNil(t, reached)
				assert.Equal(t, int64(2), reached.ID)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
			assert.Nil(t, reached)
		})
	}
}
