package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually wrapped by a *ValidationError naming the field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCopies is returned when a book's available copies are negative.
	ErrInvalidCopies = errors.New("copies available cannot be negative")

	// ErrInvalidBorrowStatus is returned when a borrow status is not recognized.
	ErrInvalidBorrowStatus = errors.New("invalid borrow status")
)

// ValidationError describes a single field that failed domain validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying cause so errors.Is can see it.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports that every ValidationError matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for field wrapping cause.
func NewValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: cause}
}
