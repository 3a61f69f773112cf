package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinHeaders is the smallest number of columns a deck may have. The first two
// headers are the presentable sides of every card.
const MinHeaders = 2

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckUserIDEmpty is returned when a deck's user ID is empty or nil.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck has a blank name.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckTooFewHeaders is returned when a deck has fewer than two headers.
	ErrDeckTooFewHeaders = errors.New("deck must have at least two headers")

	// ErrDeckHeaderEmpty is returned when any header is blank.
	ErrDeckHeaderEmpty = errors.New("deck headers cannot be empty")
)

// RowRecord maps header names to the field values of one card.
// Headers absent from the map read as the empty string.
type RowRecord map[string]string

// Get returns the value stored under header, or "" when it is missing.
func (r RowRecord) Get(header string) string {
	if r == nil {
		return ""
	}
	return r[header]
}

// Deck is a named, ordered collection of rows sharing one header list.
// Rows are addressed by their position; difficulty ratings are keyed by
// that position, so reordering rows invalidates existing ratings.
type Deck struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Name      string      `json:"name"`
	Headers   []string    `json:"headers"`
	Rows      []RowRecord `json:"rows"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewDeck creates a new Deck for the given user. Rows are normalised so every
// header is present in every row. Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name string, headers []string, rows []RowRecord) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Headers:   append([]string(nil), headers...),
		Rows:      NormalizeRows(headers, rows),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Duplicate header names are accepted: rows are zipped positionally and the
// later column wins.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}

	return ValidateHeaders(d.Headers)
}

// ValidateHeaders checks the header invariant shared by every deck.
func ValidateHeaders(headers []string) error {
	if len(headers) < MinHeaders {
		return ErrDeckTooFewHeaders
	}
	for _, h := range headers {
		if strings.TrimSpace(h) == "" {
			return ErrDeckHeaderEmpty
		}
	}
	return nil
}

// ReplaceContent swaps the deck's headers and rows and bumps UpdatedAt.
// The deck is left untouched when the new headers are invalid.
func (d *Deck) ReplaceContent(headers []string, rows []RowRecord) error {
	if err := ValidateHeaders(headers); err != nil {
		return err
	}

	d.Headers = append([]string(nil), headers...)
	d.Rows = NormalizeRows(headers, rows)
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Rename changes the deck name and bumps UpdatedAt.
func (d *Deck) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrDeckNameEmpty
	}
	d.Name = name
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Row returns the row at index i.
func (d *Deck) Row(i int) (RowRecord, error) {
	if i < 0 || i >= len(d.Rows) {
		return nil, ErrRowOutOfRange
	}
	return d.Rows[i], nil
}

// NormalizeRows returns copies of rows restricted to headers, with any
// missing header filled with the empty string.
func NormalizeRows(headers []string, rows []RowRecord) []RowRecord {
	out := make([]RowRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(RowRecord, len(headers))
		for _, h := range headers {
			rec[h] = row.Get(h)
		}
		out = append(out, rec)
	}
	return out
}
