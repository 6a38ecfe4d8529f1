package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	errServer       = errors.New("server error")
	errUserNotFound = errors.New("User not found")
)

// toConnectError classifies err into a Connect error. Unexpected errors are
// logged here and reach the caller only as a generic server error.
func toConnectError(op string, err error) error {
	var validationErr *calculator.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, validationErr)
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingLogin),
		errors.Is(err, auth.ErrMissingSearch):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrUserExists), errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ledger.ErrNoRecords):
		return connect.NewError(connect.CodeNotFound, ledger.ErrNoRecords)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errServer)
	}
}
