package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// SettingsStore persists per-user review settings of a deck.
type SettingsStore interface {
	// Get returns the review settings of userID for deckID. When none are
	// stored yet the defaults are inserted and returned.
	Get(ctx context.Context, deckID, userID uuid.UUID) (domain.ReviewSettings, error)

	// Upsert stores the review settings, replacing earlier ones.
	Upsert(ctx context.Context, deckID, userID uuid.UUID, settings domain.ReviewSettings) error
}
