package service

import (
	"errors"
	"fmt"
)

// Common service errors. Expected conditions are returned as sentinels that
// callers check with errors.Is; unexpected failures are wrapped in the
// per-service error types below. The API layer maps both to status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer maps this to 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDeckNotOwned is ErrNotOwned for decks.
	ErrDeckNotOwned = fmt.Errorf("%w: deck", ErrNotOwned)
)

// DeckServiceError wraps errors from deck operations with the operation that failed.
type DeckServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a DeckServiceError.
func NewDeckServiceError(operation, message string, err error) *DeckServiceError {
	return &DeckServiceError{Operation: operation, Message: message, Err: err}
}

// ReviewServiceError wraps errors from review operations.
type ReviewServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ReviewServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("review service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReviewServiceError) Unwrap() error {
	return e.Err
}

// NewReviewServiceError creates a ReviewServiceError.
func NewReviewServiceError(operation, message string, err error) *ReviewServiceError {
	return &ReviewServiceError{Operation: operation, Message: message, Err: err}
}
