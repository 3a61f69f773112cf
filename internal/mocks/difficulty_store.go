package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// UpsertCall records the arguments of one DifficultyStore.Upsert call.
type UpsertCall struct {
	DeckID     uuid.UUID
	UserID     uuid.UUID
	RowIndex   int
	Difficulty domain.Difficulty
}

// MockDifficultyStore implements store.DifficultyStore for testing
type MockDifficultyStore struct {
	ListForDeckFn   func(ctx context.Context, deckID, userID uuid.UUID) (domain.Ratings, error)
	UpsertFn        func(ctx context.Context, deckID, userID uuid.UUID, rowIndex int, d domain.Difficulty) error
	DeleteFromRowFn func(ctx context.Context, deckID uuid.UUID, fromRow int) error

	DefaultError error

	mu             sync.Mutex
	Upserts        []UpsertCall
	DeleteFromRows []int
	TxCalls        int
}

var _ store.DifficultyStore = (*MockDifficultyStore)(nil)

// ListForDeck implements store.DifficultyStore.ListForDeck. Without a
// ListForDeckFn it returns an empty snapshot.
func (m *MockDifficultyStore) ListForDeck(ctx context.Context, deckID, userID uuid.UUID) (domain.Ratings, error) {
	if m.ListForDeckFn != nil {
		return m.ListForDeckFn(ctx, deckID, userID)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	return domain.Ratings{}, nil
}

// Upsert implements store.DifficultyStore.Upsert
func (m *MockDifficultyStore) Upsert(
	ctx context.Context,
	deckID, userID uuid.UUID,
	rowIndex int,
	d domain.Difficulty,
) error {
	m.mu.Lock()
	m.Upserts = append(m.Upserts, UpsertCall{DeckID: deckID, UserID: userID, RowIndex: rowIndex, Difficulty: d})
	m.mu.Unlock()
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, deckID, userID, rowIndex, d)
	}
	return m.DefaultError
}

// DeleteFromRow implements store.DifficultyStore.DeleteFromRow
func (m *MockDifficultyStore) DeleteFromRow(ctx context.Context, deckID uuid.UUID, fromRow int) error {
	m.mu.Lock()
	m.DeleteFromRows = append(m.DeleteFromRows, fromRow)
	m.mu.Unlock()
	if m.DeleteFromRowFn != nil {
		return m.DeleteFromRowFn(ctx, deckID, fromRow)
	}
	return m.DefaultError
}

// WithTx implements store.DifficultyStore.WithTx
func (m *MockDifficultyStore) WithTx(tx *sql.Tx) store.DifficultyStore {
	m.mu.Lock()
	m.TxCalls++
	m.mu.Unlock()
	return m
}
