// Package apperror defines the error taxonomy shared by the service and API
// layers. Callers distinguish kinds with errors.Is against the sentinel
// errors; anything that does not match one of them is a server fault.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated means no caller identity was presented where one is required.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is known but lacks rights for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced account, post, conversation or edge does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a uniqueness constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidOperation means the operation is nonsensical (self-follow, self-block).
	ErrInvalidOperation = errors.New("invalid operation")
)

// AppError carries a sentinel kind plus a human-readable message.
type AppError struct {
	Err     error
	Message string
	Field   string // optional field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns a validation error for the given field.
func Validation(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthenticated returns an authentication-required error.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// Forbidden returns a forbidden error.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// NotFound returns a not-found error for a resource.
func NotFound(resource string, id interface{}) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
	}
}

// AlreadyExists returns a duplicate-resource error.
func AlreadyExists(message string) *AppError {
	return &AppError{
		Err:     ErrAlreadyExists,
		Message: message,
	}
}

// InvalidOperation returns an invalid-operation error.
func InvalidOperation(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidOperation,
		Message: message,
	}
}
