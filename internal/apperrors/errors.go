package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing, invalid or ended credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRead indicates that a read against the document store failed or returned an unexpected shape.
var ErrRead = errors.New("read failed")

// ErrWrite indicates that a write against the document store failed.
var ErrWrite = errors.New("write failed")

// ErrAmbiguousWrite indicates the write was accepted but the confirmation
// refetch failed, so whether the mutation persisted is unknown.
var ErrAmbiguousWrite = errors.New("write state unknown: confirmation read failed")

// ErrNotReady indicates an operation was attempted on a ledger that has not loaded.
var ErrNotReady = errors.New("ledger not ready")

// ErrDisposed indicates the ledger was closed before or during the operation.
var ErrDisposed = errors.New("ledger disposed")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
