package store

import (
	"errors"
	"fmt"
)

// Store sentinels. Implementations wrap them so callers can match with
// errors.Is regardless of the backing database.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific variants of the sentinels above.
var (
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrDeckOwnerMissing is returned when a deck references a user that does
	// not exist.
	ErrDeckOwnerMissing = fmt.Errorf("%w: deck owner does not exist", ErrInvalidEntity)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which store call failed. Entity is the table-level
// noun ("deck", "difficulty", "settings", "user").
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s store %s: %s", e.Entity, e.Operation, e.Message)
	}
	return fmt.Sprintf("%s store %s: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
