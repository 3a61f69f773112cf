package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockSettingsStore implements store.SettingsStore for testing
type MockSettingsStore struct {
	GetFn    func(ctx context.Context, deckID, userID uuid.UUID) (domain.ReviewSettings, error)
	UpsertFn func(ctx context.Context, deckID, userID uuid.UUID, settings domain.ReviewSettings) error

	DefaultError error

	mu    sync.Mutex
	Saved []domain.ReviewSettings
}

var _ store.SettingsStore = (*MockSettingsStore)(nil)

// Get implements store.SettingsStore.Get. Without a GetFn it returns the
// default settings.
func (m *MockSettingsStore) Get(ctx context.Context, deckID, userID uuid.UUID) (domain.ReviewSettings, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, deckID, userID)
	}
	if m.DefaultError != nil {
		return domain.ReviewSettings{}, m.DefaultError
	}
	return domain.DefaultReviewSettings(), nil
}

// Upsert implements store.SettingsStore.Upsert
func (m *MockSettingsStore) Upsert(
	ctx context.Context,
	deckID, userID uuid.UUID,
	settings domain.ReviewSettings,
) error {
	m.mu.Lock()
	m.Saved = append(m.Saved, settings)
	m.mu.Unlock()
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, deckID, userID, settings)
	}
	return m.DefaultError
}
