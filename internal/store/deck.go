package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// DeckSummary is the listing view of a deck.
type DeckSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	RowCount  int       `json:"row_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeckStore defines the interface for deck persistence.
// Headers and rows are stored together, so a deck is always read and written
// whole.
type DeckStore interface {
	// Create saves a new deck. The deck is validated first.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser returns the summaries of all decks owned by userID, most
	// recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]DeckSummary, error)

	// Update replaces the name, headers and rows of an existing deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck. Ratings and settings for the deck are removed by
	// ON DELETE CASCADE.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore that runs its queries on tx.
	WithTx(tx *sql.Tx) DeckStore
}
