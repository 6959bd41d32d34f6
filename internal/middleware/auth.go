package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// PrincipalKey is the context key for storing the authenticated caller.
const PrincipalKey contextKey = "principal"

var errWrongRole = errors.New("caller is not allowed to use this service")

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal extracts the authenticated caller from the context.
// Returns nil if the request was not authenticated.
func GetPrincipal(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(PrincipalKey).(*auth.Principal)
	return p
}

// GetMemberID returns the ID of the authenticated member, or 0 when the caller
// is anonymous or an administrator.
func GetMemberID(ctx context.Context) int64 {
	if p := GetPrincipal(ctx); p != nil && p.Role == auth.RoleMember {
		return p.ID
	}
	return 0
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// RequireRole returns an interceptor that validates the bearer token and admits
// only principals holding role. The principal is added to the request context.
func RequireRole(jwtManager *auth.JWTManager, role auth.Role) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			principal, err := jwtManager.Validate(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			if principal.Role != role {
				return nil, connect.NewError(connect.CodePermissionDenied, errWrongRole)
			}

			return next(WithPrincipal(ctx, principal), req)
		}
	}
}
