package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/redact"
	"github.com/phrazzld/scry-decks/internal/store"
)

// DeckService manages decks on behalf of a user. Every operation on an
// existing deck checks that the caller owns it.
type DeckService interface {
	// Create stores a new deck built from structured content.
	Create(ctx context.Context, userID uuid.UUID, name string, headers []string, rows []domain.RowRecord) (*domain.Deck, error)

	// CreateFromText decodes text and stores the result as a new deck.
	// A *deckfmt.FormatError is returned as is and nothing is stored.
	CreateFromText(ctx context.Context, userID uuid.UUID, name, text string) (*domain.Deck, error)

	// Get returns a deck owned by userID.
	Get(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)

	// List returns summaries of all decks owned by userID.
	List(ctx context.Context, userID uuid.UUID) ([]store.DeckSummary, error)

	// Update replaces the content of a deck. An empty name keeps the current
	// one. Ratings of rows that no longer exist are removed in the same
	// transaction.
	Update(ctx context.Context, userID, deckID uuid.UUID, name string, headers []string, rows []domain.RowRecord) (*domain.Deck, error)

	// UpdateFromText is Update with content decoded from text.
	UpdateFromText(ctx context.Context, userID, deckID uuid.UUID, name, text string) (*domain.Deck, error)

	// Delete removes a deck together with its ratings and settings.
	Delete(ctx context.Context, userID, deckID uuid.UUID) error

	// Export encodes a deck in the text format accepted by CreateFromText.
	Export(ctx context.Context, userID, deckID uuid.UUID) (string, error)
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	db           store.TxBeginner
	decks        store.DeckStore
	difficulties store.DifficultyStore
	logger       *slog.Logger
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	db store.TxBeginner,
	decks store.DeckStore,
	difficulties store.DifficultyStore,
	logger *slog.Logger,
) (DeckService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if difficulties == nil {
		return nil, domain.NewValidationError("difficulties", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		db:           db,
		decks:        decks,
		difficulties: difficulties,
		logger:       logger.With(slog.String("component", "deck_service")),
	}, nil
}

// Create implements DeckService.Create
func (s *deckServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	headers []string,
	rows []domain.RowRecord,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(userID, name, headers, rows)
	if err != nil {
		log.Debug("rejected invalid deck", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.decks.Create(ctx, deck); err != nil {
		log.Error("failed to create deck",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, NewDeckServiceError("create", "failed to save deck", err)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("rows", len(deck.Rows)))
	return deck, nil
}

// CreateFromText implements DeckService.CreateFromText
func (s *deckServiceImpl) CreateFromText(
	ctx context.Context,
	userID uuid.UUID,
	name, text string,
) (*domain.Deck, error) {
	headers, rows, err := deckfmt.Decode(text)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("deck text rejected", slog.String("error", err.Error()))
		return nil, err
	}
	return s.Create(ctx, userID, name, headers, rows)
}

// Get implements DeckService.Get
func (s *deckServiceImpl) Get(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	return s.loadOwnedDeck(ctx, s.decks, userID, deckID, "get")
}

// List implements DeckService.List
func (s *deckServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]store.DeckSummary, error) {
	summaries, err := s.decks.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list decks",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, NewDeckServiceError("list", "failed to list decks", err)
	}
	return summaries, nil
}

// Update implements DeckService.Update
func (s *deckServiceImpl) Update(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name string,
	headers []string,
	rows []domain.RowRecord,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Deck
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDecks := s.decks.WithTx(tx)
		txDifficulties := s.difficulties.WithTx(tx)

		deck, err := s.loadOwnedDeck(ctx, txDecks, userID, deckID, "update")
		if err != nil {
			return err
		}
		oldRows := len(deck.Rows)

		if name != "" {
			if err := deck.Rename(name); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrValidation, err)
			}
		}
		if err := deck.ReplaceContent(headers, rows); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}

		if err := txDecks.Update(ctx, deck); err != nil {
			return NewDeckServiceError("update", "failed to save deck", err)
		}

		if len(deck.Rows) < oldRows {
			if err := txDifficulties.DeleteFromRow(ctx, deck.ID, len(deck.Rows)); err != nil {
				return NewDeckServiceError("update", "failed to drop stale ratings", err)
			}
			log.Debug("dropped ratings of removed rows",
				slog.String("deck_id", deck.ID.String()),
				slog.Int("from_row", len(deck.Rows)))
		}

		updated = deck
		return nil
	})
	if err != nil {
		var svcErr *DeckServiceError
		if errors.As(err, &svcErr) {
			log.Error("deck update failed",
				slog.String("error", redact.Error(err)),
				slog.String("deck_id", deckID.String()))
		}
		return nil, err
	}

	log.Info("deck updated",
		slog.String("deck_id", deckID.String()),
		slog.Int("rows", len(updated.Rows)))
	return updated, nil
}

// UpdateFromText implements DeckService.UpdateFromText
func (s *deckServiceImpl) UpdateFromText(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name, text string,
) (*domain.Deck, error) {
	headers, rows, err := deckfmt.Decode(text)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, userID, deckID, name, headers, rows)
}

// Delete implements DeckService.Delete
func (s *deckServiceImpl) Delete(ctx context.Context, userID, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.loadOwnedDeck(ctx, s.decks, userID, deckID, "delete"); err != nil {
		return err
	}

	if err := s.decks.Delete(ctx, deckID); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return err
		}
		log.Error("failed to delete deck",
			slog.String("error", redact.Error(err)),
			slog.String("deck_id", deckID.String()))
		return NewDeckServiceError("delete", "failed to delete deck", err)
	}

	log.Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}

// Export implements DeckService.Export
func (s *deckServiceImpl) Export(ctx context.Context, userID, deckID uuid.UUID) (string, error) {
	deck, err := s.loadOwnedDeck(ctx, s.decks, userID, deckID, "export")
	if err != nil {
		return "", err
	}
	return deckfmt.EncodeDeck(deck), nil
}

// loadOwnedDeck fetches a deck through decks and checks that userID owns it.
// store.ErrDeckNotFound and ErrDeckNotOwned are returned unwrapped.
func (s *deckServiceImpl) loadOwnedDeck(
	ctx context.Context,
	decks store.DeckStore,
	userID, deckID uuid.UUID,
	operation string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := decks.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			log.Debug("deck not found", slog.String("deck_id", deckID.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to load deck",
			slog.String("error", redact.Error(err)),
			slog.String("deck_id", deckID.String()))
		return nil, NewDeckServiceError(operation, "failed to load deck", err)
	}

	if deck.UserID != userID {
		log.Warn("deck access by non-owner",
			slog.String("deck_id", deckID.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrDeckNotOwned
	}

	return deck, nil
}
