package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("unavailable")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage error")
	ErrInternal        = errors.New("internal error")
)

// internalError logs the persistence failure and hides its detail from callers.
func internalError(op string, err error) error {
	zap.S().Errorw("persistence failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s", ErrInternal, op)
}
