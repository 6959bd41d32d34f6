package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

var errInternal = errors.New("internal error")

// toConnectError maps domain, storage and auth errors onto Connect codes.
// Unrecognised errors are logged and surfaced as CodeInternal without detail.
func toConnectError(ctx context.Context, logger *slog.Logger, op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, models.ErrInvalidRecord),
		errors.Is(err, auth.ErrWeakPasscode),
		errors.Is(err, auth.ErrNameRequired):
		code = connect.CodeInvalidArgument
	case errors.Is(err, storage.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, storage.ErrConflict), errors.Is(err, auth.ErrNameTaken):
		code = connect.CodeAlreadyExists
	case errors.Is(err, auth.ErrInvalidCredentials):
		code = connect.CodeUnauthenticated
	case errors.Is(err, auth.ErrLockedOut):
		code = connect.CodeResourceExhausted
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		logger.ErrorContext(ctx, op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
	return connect.NewError(code, err)
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
