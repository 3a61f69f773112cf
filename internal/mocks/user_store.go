package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	EnsureByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	DefaultError error
}

var _ store.UserStore = (*MockUserStore)(nil)

// EnsureByUsername implements store.UserStore.EnsureByUsername
func (m *MockUserStore) EnsureByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.EnsureByUsernameFn != nil {
		return m.EnsureByUsernameFn(ctx, username)
	}
	return nil, m.DefaultError
}

// GetByID implements store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, m.DefaultError
}
