package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", Validation("content", "content is required"), ErrValidation},
		{"unauthenticated", Unauthenticated("login required"), ErrUnauthenticated},
		{"forbidden", Forbidden("not a participant"), ErrForbidden},
		{"not found", NotFound("account", "alice"), ErrNotFound},
		{"already exists", AlreadyExists("already following"), ErrAlreadyExists},
		{"invalid operation", InvalidOperation("cannot follow yourself"), ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestKindsAreDistinct(t *testing.T) {
	err := NotFound("post", 42)

	if errors.Is(err, ErrValidation) {
		t.Error("not-found error should not match ErrValidation")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("not-found error should not match ErrForbidden")
	}
}

func TestWrappedErrorSurvivesFmt(t *testing.T) {
	inner := Forbidden("access denied")
	wrapped := fmt.Errorf("sending message: %w", inner)

	if !errors.Is(wrapped, ErrForbidden) {
		t.Error("wrapped error should still match ErrForbidden")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("wrapped error should unwrap to *AppError")
	}
	if appErr.Message != "access denied" {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestValidationField(t *testing.T) {
	err := Validation("password", "password must be at least 8 characters")
	if err.Field != "password" {
		t.Errorf("expected field 'password', got %q", err.Field)
	}
	if err.Error() != "password must be at least 8 characters" {
		t.Errorf("unexpected Error(): %s", err.Error())
	}
}
