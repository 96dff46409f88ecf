package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUploadFailed       = errors.New("upload failed")
)

// Not-found and conflict variants keep the generic kind reachable with errors.Is.
var (
	ErrStudentNotFound     = fmt.Errorf("student %w", ErrNotFound)
	ErrCompanyNotFound     = fmt.Errorf("company %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrOpportunityNotFound = fmt.Errorf("opportunity %w", ErrNotFound)

	ErrEmailTaken     = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrAlreadyApplied = fmt.Errorf("already applied to this opportunity: %w", ErrConflict)
)

// ValidationError reports missing or malformed input. Its message is safe to
// return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
