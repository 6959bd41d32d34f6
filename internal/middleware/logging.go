package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Place it after the auth interceptor so the caller is known.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"request_id", GetRequestID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if p := GetPrincipal(ctx); p != nil {
				attrs = append(attrs, "role", p.Role, "principal_id", p.ID)
			}

			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.Warn("RPC error", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
				} else {
					logger.Error("RPC error", append(attrs, "error", err)...)
				}
			} else {
				logger.Info("RPC ok", attrs...)
			}

			return resp, err
		}
	}
}
