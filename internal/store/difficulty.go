package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// DifficultyStore persists the ratings a user gave to the rows of a deck.
// Unrated rows have no record; they read as unreported.
type DifficultyStore interface {
	// ListForDeck returns the ratings snapshot of userID for deckID. A deck
	// with no ratings yields an empty, non-nil snapshot.
	ListForDeck(ctx context.Context, deckID, userID uuid.UUID) (domain.Ratings, error)

	// Upsert records the rating of one row, replacing any earlier rating.
	Upsert(ctx context.Context, deckID, userID uuid.UUID, rowIndex int, d domain.Difficulty) error

	// DeleteFromRow removes every rating of deckID (for all users) whose row
	// index is fromRow or greater. It is used when a deck shrinks.
	DeleteFromRow(ctx context.Context, deckID uuid.UUID, fromRow int) error

	// WithTx returns a DifficultyStore that runs its queries on tx.
	WithTx(tx *sql.Tx) DifficultyStore
}
