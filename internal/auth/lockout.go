package auth

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrLockedOut is returned while an account is throttled after repeated failures.
var ErrLockedOut = errors.New("too many failed attempts, try again later")

type clientIPKey struct{}

// WithClientIP records the address a login attempt came from.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address stored by WithClientIP, or "" when unknown.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// lockoutKey scopes failures to one account from one address, so a stranger
// guessing passcodes cannot lock the real owner out from elsewhere.
func lockoutKey(ctx context.Context, role Role, name string) string {
	return string(role) + ":" + name + "@" + ClientIP(ctx)
}

// Lockout counts failed logins per account and blocks further attempts once
// maxAttempts is reached, until window elapses since the first failure.
// A nil *Lockout allows everything.
type Lockout struct {
	failures    *cache.Cache
	maxAttempts int
	window      time.Duration
}

// NewLockout creates a lockout tracker.
func NewLockout(maxAttempts int, window time.Duration) *Lockout {
	return &Lockout{
		failures:    cache.New(window, 2*window),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Check returns ErrLockedOut if key has used up its attempts.
func (l *Lockout) Check(key string) error {
	if l == nil {
		return nil
	}
	if n, ok := l.failures.Get(key); ok && n.(int) >= l.maxAttempts {
		return ErrLockedOut
	}
	return nil
}

// Fail records a failed attempt. The first failure opens the window.
func (l *Lockout) Fail(key string) {
	if l == nil {
		return
	}
	if err := l.failures.Add(key, 1, l.window); err != nil {
		// Already present: bump the counter without extending the window.
		_, _ = l.failures.IncrementInt(key, 1)
	}
}

// Reset clears the failures of key after a successful login.
func (l *Lockout) Reset(key string) {
	if l == nil {
		return
	}
	l.failures.Delete(key)
}
