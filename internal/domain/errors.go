package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDifficulty is returned when a difficulty rating is not one of
	// easy, normal, challenging or hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidDirection is returned when a review direction is not recognised.
	ErrInvalidDirection = errors.New("invalid review direction")

	// ErrRowOutOfRange is returned when a row index does not address a row of the deck.
	ErrRowOutOfRange = errors.New("row index out of range")
)

// ValidationError describes why a single field failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError. err is usually ErrValidation
// or one of the more specific sentinels.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
