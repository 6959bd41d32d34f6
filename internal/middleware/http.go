package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey contextKey = "request_id"

// GetRequestID returns the correlation ID assigned by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID assigns every request a correlation ID, reusing a well-formed
// inbound X-Request-ID, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logging logs all incoming requests.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"remote_addr", r.RemoteAddr,
				"request_id", GetRequestID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// CORS adds CORS headers for browser access.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimiter hands out a token bucket per client IP. Idle buckets expire.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	visitors *cache.Cache
}

// NewRateLimiter allows each client rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		visitors: cache.New(10*time.Minute, 5*time.Minute),
	}
}

// Allow reports whether the client at ip may make a request now.
func (l *RateLimiter) Allow(ip string) bool {
	if l == nil || l.limit <= 0 {
		return true
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	if err := l.visitors.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		if v, ok := l.visitors.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		}
	}
	// Touch so active clients keep their bucket.
	l.visitors.SetDefault(ip, limiter)
	return limiter.Allow()
}

// Middleware rejects requests over the client's budget with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Chain applies middlewares so the first one listed is outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
