package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// UserStore persists the users that own decks. There are no credentials;
// a user is only an ID and a unique username.
type UserStore interface {
	// EnsureByUsername returns the user named username, inserting it on first
	// use. Concurrent and repeated calls yield the same user.
	EnsureByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID returns ErrUserNotFound for unknown IDs.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
