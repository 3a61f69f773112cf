package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockDeckStore implements store.DeckStore for testing
type MockDeckStore struct {
	CreateFn     func(ctx context.Context, deck *domain.Deck) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]store.DeckSummary, error)
	UpdateFn     func(ctx context.Context, deck *domain.Deck) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	DefaultError error

	mu      sync.Mutex
	Created []*domain.Deck
	Updated []*domain.Deck
	Deleted []uuid.UUID
	TxCalls int
}

var _ store.DeckStore = (*MockDeckStore)(nil)

// Create implements store.DeckStore.Create
func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	m.mu.Lock()
	m.Created = append(m.Created, deck)
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, deck)
	}
	return m.DefaultError
}

// GetByID implements store.DeckStore.GetByID
func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, m.DefaultError
}

// ListByUser implements store.DeckStore.ListByUser
func (m *MockDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]store.DeckSummary, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, m.DefaultError
}

// Update implements store.DeckStore.Update
func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	m.mu.Lock()
	m.Updated = append(m.Updated, deck)
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, deck)
	}
	return m.DefaultError
}

// Delete implements store.DeckStore.Delete
func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, id)
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// WithTx implements store.DeckStore.WithTx. It returns the mock itself and
// counts the call.
func (m *MockDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	m.mu.Lock()
	m.TxCalls++
	m.mu.Unlock()
	return m
}
