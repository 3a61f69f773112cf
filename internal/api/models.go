package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// errContentChoice is returned when a deck request sets both or neither of
// text and headers.
var errContentChoice = domain.NewValidationError("content", "provide either text or headers and rows", domain.ErrValidation)

// DeckContentRequest carries deck content either as text in the deck format
// or as structured headers and rows.
type DeckContentRequest struct {
	Name    string             `json:"name"    validate:"max=200"`
	Text    string             `json:"text"`
	Headers []string           `json:"headers" validate:"omitempty,min=2,dive,max=200"`
	Rows    []domain.RowRecord `json:"rows"`
}

// Validate implements the cross-field rule of DeckContentRequest.
func (r DeckContentRequest) Validate() error {
	hasText := r.Text != ""
	hasHeaders := len(r.Headers) > 0
	if hasText == hasHeaders {
		return errContentChoice
	}
	return nil
}

// CreateDeckRequest is the body of POST /api/decks.
type CreateDeckRequest struct {
	DeckContentRequest
}

// Validate requires a name on creation.
func (r CreateDeckRequest) Validate() error {
	if r.Name == "" {
		return domain.NewValidationError("name", "is required", domain.ErrValidation)
	}
	return r.DeckContentRequest.Validate()
}

// RateRequest is the body of POST /api/decks/{id}/difficulties.
type RateRequest struct {
	RowIndex   *int   `json:"row_index"  validate:"required,gte=0"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy normal challenging hard"`
}

// SettingsRequest is the body of PUT /api/decks/{id}/settings.
type SettingsRequest struct {
	Direction string `json:"direction" validate:"required,oneof=both leftToRight rightToLeft"`
	SkipEasy  bool   `json:"skip_easy"`
}

// DeckResponse is the structured view of a deck.
type DeckResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Headers   []string           `json:"headers"`
	Rows      []domain.RowRecord `json:"rows"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// DeckListResponse wraps deck summaries.
type DeckListResponse struct {
	Decks []store.DeckSummary `json:"decks"`
}

// RevealResponse carries the answer side of a card.
type RevealResponse struct {
	RowIndex int    `json:"row_index"`
	Back     string `json:"back"`
}

// RatingsResponse lists the ratings of a deck keyed by row index.
type RatingsResponse struct {
	DeckID  uuid.UUID      `json:"deck_id"`
	Ratings domain.Ratings `json:"ratings"`
}

func deckToResponse(d *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:        d.ID,
		Name:      d.Name,
		Headers:   d.Headers,
		Rows:      d.Rows,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
