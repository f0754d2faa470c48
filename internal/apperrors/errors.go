package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found,
// or is not visible to the caller's company.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates an attempted transition from a terminal or wrong
// lifecycle state (posting a non-draft journal, mutating a locked period, ...).
var ErrInvalidState = errors.New("invalid state for requested operation")

// ErrForbidden indicates that the caller's role does not permit the action.
var ErrForbidden = errors.New("operation not permitted")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates a storage or technical failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the underlying cause and the taxonomy sentinel matching
// the code, so errors.Is works against either.
func (e *AppError) Unwrap() []error {
	sentinel := sentinelForCode(e.Code)
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

func sentinelForCode(code int) error {
	switch code {
	case 400:
		return ErrValidation
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrInvalidState
	default:
		return ErrInternal
	}
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

// NewValidationError creates a 400 AppError.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}

// NewInvalidStateError creates a 409 AppError.
func NewInvalidStateError(message string) *AppError {
	return &AppError{Code: 409, Message: message}
}
