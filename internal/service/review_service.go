package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/review"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/redact"
	"github.com/phrazzld/scry-decks/internal/store"
)

// Card is the front of a picked row, everything a client needs to show it and
// later ask for the answer.
type Card struct {
	DeckID      uuid.UUID   `json:"deck_id"`
	RowIndex    int         `json:"row_index"`
	Side        review.Side `json:"side"`
	FrontHeader string      `json:"front_header"`
	BackHeader  string      `json:"back_header"`
	Front       string      `json:"front"`
}

// DeckStatistics counts the rows of a deck per difficulty. Rows without a
// rating are counted as unreported.
type DeckStatistics struct {
	DeckID uuid.UUID                 `json:"deck_id"`
	Total  int                       `json:"total"`
	Counts map[domain.Difficulty]int `json:"counts"`
}

// ReviewService runs review sessions over stored decks. The session phase
// lives with the client: Next, Reveal and Rate are independent calls keyed by
// row index and front header.
type ReviewService interface {
	// Next picks the next card of a deck using the user's ratings and settings.
	// Returns review.ErrNoCandidates when every row is filtered out.
	Next(ctx context.Context, userID, deckID uuid.UUID) (*Card, error)

	// Reveal returns the answer of row when frontHeader was shown first.
	Reveal(ctx context.Context, userID, deckID uuid.UUID, rowIndex int, frontHeader string) (string, error)

	// Rate records the difficulty of one row.
	Rate(ctx context.Context, userID, deckID uuid.UUID, rowIndex int, d domain.Difficulty) error

	// Ratings returns the ratings snapshot of the user for a deck.
	Ratings(ctx context.Context, userID, deckID uuid.UUID) (domain.Ratings, error)

	// Settings returns the review settings of the user for a deck.
	Settings(ctx context.Context, userID, deckID uuid.UUID) (domain.ReviewSettings, error)

	// UpdateSettings validates and stores new review settings.
	UpdateSettings(ctx context.Context, userID, deckID uuid.UUID, settings domain.ReviewSettings) (domain.ReviewSettings, error)

	// Statistics tallies the rows of a deck per difficulty.
	Statistics(ctx context.Context, userID, deckID uuid.UUID) (*DeckStatistics, error)
}

// lockedSource serialises access to a RandSource; seeded sources are not
// safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src review.RandSource
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	decks        store.DeckStore
	difficulties store.DifficultyStore
	settings     store.SettingsStore
	selector     *review.Selector
	rnd          review.RandSource
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService. A nil rnd uses the runtime's
// generator; a nil selector uses the default weight table.
func NewReviewService(
	decks store.DeckStore,
	difficulties store.DifficultyStore,
	settings store.SettingsStore,
	selector *review.Selector,
	rnd review.RandSource,
	logger *slog.Logger,
) (ReviewService, error) {
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if difficulties == nil {
		return nil, domain.NewValidationError("difficulties", "cannot be nil", domain.ErrValidation)
	}
	if settings == nil {
		return nil, domain.NewValidationError("settings", "cannot be nil", domain.ErrValidation)
	}
	if selector == nil {
		selector = review.NewSelector()
	}
	if rnd == nil {
		rnd = review.DefaultSource()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		decks:        decks,
		difficulties: difficulties,
		settings:     settings,
		selector:     selector,
		rnd:          &lockedSource{src: rnd},
		logger:       logger.With(slog.String("component", "review_service")),
	}, nil
}

// Next implements ReviewService.Next
func (s *reviewServiceImpl) Next(ctx context.Context, userID, deckID uuid.UUID) (*Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.loadOwnedDeck(ctx, userID, deckID, "next")
	if err != nil {
		return nil, err
	}

	ratings, err := s.difficulties.ListForDeck(ctx, deckID, userID)
	if err != nil {
		return nil, s.fail(ctx, "next", "failed to load ratings", err)
	}

	settings, err := s.settings.Get(ctx, deckID, userID)
	if err != nil {
		return nil, s.fail(ctx, "next", "failed to load settings", err)
	}

	sel, err := s.selector.Pick(deck, ratings, settings, s.rnd)
	if err != nil {
		if errors.Is(err, review.ErrNoCandidates) {
			log.Info("no cards to review",
				slog.String("deck_id", deckID.String()),
				slog.Bool("skip_easy", settings.SkipEasy))
		}
		return nil, err
	}

	front, err := review.Front(deck, sel)
	if err != nil {
		return nil, err
	}

	log.Debug("picked card",
		slog.String("deck_id", deckID.String()),
		slog.Int("row_index", sel.RowIndex),
		slog.String("front_header", sel.FrontHeader))

	return &Card{
		DeckID:      deckID,
		RowIndex:    sel.RowIndex,
		Side:        sel.Side,
		FrontHeader: sel.FrontHeader,
		BackHeader:  sel.BackHeader,
		Front:       front,
	}, nil
}

// Reveal implements ReviewService.Reveal
func (s *reviewServiceImpl) Reveal(
	ctx context.Context,
	userID, deckID uuid.UUID,
	rowIndex int,
	frontHeader string,
) (string, error) {
	deck, err := s.loadOwnedDeck(ctx, userID, deckID, "reveal")
	if err != nil {
		return "", err
	}

	sel, err := review.SelectionFor(deck, rowIndex, frontHeader)
	if err != nil {
		return "", err
	}
	return review.Reveal(deck, sel)
}

// Rate implements ReviewService.Rate
func (s *reviewServiceImpl) Rate(
	ctx context.Context,
	userID, deckID uuid.UUID,
	rowIndex int,
	d domain.Difficulty,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.loadOwnedDeck(ctx, userID, deckID, "rate")
	if err != nil {
		return err
	}

	// Validates the row and difficulty; the snapshot itself is not needed.
	if _, err := review.Rate(deck, nil, rowIndex, d); err != nil {
		return err
	}

	if err := s.difficulties.Upsert(ctx, deckID, userID, rowIndex, d); err != nil {
		return s.fail(ctx, "rate", "failed to save rating", err)
	}

	log.Debug("row rated",
		slog.String("deck_id", deckID.String()),
		slog.Int("row_index", rowIndex),
		slog.String("difficulty", string(d)))
	return nil
}

// Ratings implements ReviewService.Ratings
func (s *reviewServiceImpl) Ratings(ctx context.Context, userID, deckID uuid.UUID) (domain.Ratings, error) {
	if _, err := s.loadOwnedDeck(ctx, userID, deckID, "ratings"); err != nil {
		return nil, err
	}

	ratings, err := s.difficulties.ListForDeck(ctx, deckID, userID)
	if err != nil {
		return nil, s.fail(ctx, "ratings", "failed to load ratings", err)
	}
	return ratings, nil
}

// Settings implements ReviewService.Settings
func (s *reviewServiceImpl) Settings(ctx context.Context, userID, deckID uuid.UUID) (domain.ReviewSettings, error) {
	if _, err := s.loadOwnedDeck(ctx, userID, deckID, "settings"); err != nil {
		return domain.ReviewSettings{}, err
	}

	settings, err := s.settings.Get(ctx, deckID, userID)
	if err != nil {
		return domain.ReviewSettings{}, s.fail(ctx, "settings", "failed to load settings", err)
	}
	return settings, nil
}

// UpdateSettings implements ReviewService.UpdateSettings
func (s *reviewServiceImpl) UpdateSettings(
	ctx context.Context,
	userID, deckID uuid.UUID,
	settings domain.ReviewSettings,
) (domain.ReviewSettings, error) {
	if err := settings.Validate(); err != nil {
		return domain.ReviewSettings{}, err
	}

	if _, err := s.loadOwnedDeck(ctx, userID, deckID, "update_settings"); err != nil {
		return domain.ReviewSettings{}, err
	}

	if err := s.settings.Upsert(ctx, deckID, userID, settings); err != nil {
		return domain.ReviewSettings{}, s.fail(ctx, "update_settings", "failed to save settings", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("review settings updated",
		slog.String("deck_id", deckID.String()),
		slog.String("direction", string(settings.Direction)),
		slog.Bool("skip_easy", settings.SkipEasy))
	return settings, nil
}

// Statistics implements ReviewService.Statistics
func (s *reviewServiceImpl) Statistics(ctx context.Context, userID, deckID uuid.UUID) (*DeckStatistics, error) {
	deck, err := s.loadOwnedDeck(ctx, userID, deckID, "statistics")
	if err != nil {
		return nil, err
	}

	ratings, err := s.difficulties.ListForDeck(ctx, deckID, userID)
	if err != nil {
		return nil, s.fail(ctx, "statistics", "failed to load ratings", err)
	}

	return &DeckStatistics{
		DeckID: deckID,
		Total:  len(deck.Rows),
		Counts: ratings.Tally(len(deck.Rows)),
	}, nil
}

func (s *reviewServiceImpl) loadOwnedDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	operation string,
) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, store.ErrDeckNotFound
		}
		return nil, s.fail(ctx, operation, "failed to load deck", err)
	}
	if deck.UserID != userID {
		return nil, ErrDeckNotOwned
	}
	return deck, nil
}

// fail logs an unexpected error and wraps it in a ReviewServiceError.
func (s *reviewServiceImpl) fail(ctx context.Context, operation, message string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(message,
		slog.String("operation", operation),
		slog.String("error", redact.Error(err)))
	return NewReviewServiceError(operation, message, err)
}
