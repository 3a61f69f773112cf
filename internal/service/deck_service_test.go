package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestDeck(t *testing.T, userID uuid.UUID, rows int) *domain.Deck {
	t.Helper()
	records := make([]domain.RowRecord, 0, rows)
	for i := 0; i < rows; i++ {
		records = append(records, domain.RowRecord{
			"Spanish": "es" + string(rune('a'+i)),
			"English": "en" + string(rune('a'+i)),
		})
	}
	deck, err := domain.NewDeck(userID, "Verbs", []string{"Spanish", "English"}, records)
	require.NoError(t, err)
	return deck
}

func newDeckService(
	t *testing.T,
	db store.TxBeginner,
	decks *mocks.MockDeckStore,
	difficulties *mocks.MockDifficultyStore,
) service.DeckService {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	svc, err := service.NewDeckService(db, decks, difficulties, log)
	require.NoError(t, err)
	return svc
}

func TestNewDeckService_NilDependencies(t *testing.T) {
	t.Parallel()

	db, _ := newMockDB(t)
	decks := &mocks.MockDeckStore{}
	difficulties := &mocks.MockDifficultyStore{}

	tests := []struct {
		name  string
		build func() (service.DeckService, error)
		field string
	}{
		{"nil db", func() (service.DeckService, error) {
			return service.NewDeckService(nil, decks, difficulties, nil)
		}, "db"},
		{"nil decks", func() (service.DeckService, error) {
			return service.NewDeckService(db, nil, difficulties, nil)
		}, "decks"},
		{"nil difficulties", func() (service.DeckService, error) {
			return service.NewDeckService(db, decks, nil, nil)
		}, "difficulties"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := tc.build()
			assert.Nil(t, svc)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestDeckService_CreateFromText(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("decodes and stores", func(t *testing.T) {
		db, _ := newMockDB(t)
		decks := &mocks.MockDeckStore{}
		svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

		deck, err := svc.CreateFromText(context.Background(), userID, "Verbs",
			"Spanish - English\nhablar - to speak\ncomer - to eat\n")
		require.NoError(t, err)

		assert.Equal(t, []string{"Spanish", "English"}, deck.Headers)
		require.Len(t, deck.Rows, 2)
		assert.Equal(t, "to eat", deck.Rows[1].Get("English"))
		assert.Equal(t, userID, deck.UserID)
		require.Len(t, decks.Created, 1)
		assert.Same(t, deck, decks.Created[0])
	})

	t.Run("format error stores nothing", func(t *testing.T) {
		db, _ := newMockDB(t)
		decks := &mocks.MockDeckStore{}
		svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

		_, err := svc.CreateFromText(context.Background(), userID, "Empty", "")
		require.Error(t, err)
		assert.True(t, deckfmt.IsFormatError(err))
		assert.Empty(t, decks.Created)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		db, _ := newMockDB(t)
		storeErr := errors.New("connection reset")
		decks := &mocks.MockDeckStore{DefaultError: storeErr}
		svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

		_, err := svc.CreateFromText(context.Background(), userID, "Verbs", "a - b\n1 - 2\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
		var svcErr *service.DeckServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create", svcErr.Operation)
	})
}

func TestDeckService_Create_InvalidDeck(t *testing.T) {
	t.Parallel()

	db, _ := newMockDB(t)
	decks := &mocks.MockDeckStore{}
	svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

	_, err := svc.Create(context.Background(), uuid.New(), "  ", []string{"a", "b"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrDeckNameEmpty)

	_, err = svc.Create(context.Background(), uuid.New(), "Solo", []string{"only"}, nil)
	assert.ErrorIs(t, err, domain.ErrDeckTooFewHeaders)
	assert.Empty(t, decks.Created)
}

func TestDeckService_Ownership(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()
	deck := newTestDeck(t, owner, 2)

	db, _ := newMockDB(t)
	decks := &mocks.MockDeckStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
			if id == deck.ID {
				return deck, nil
			}
			return nil, store.NewStoreError("deck", "get", "deck not found", store.ErrDeckNotFound)
		},
	}
	svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})
	ctx := context.Background()

	got, err := svc.Get(ctx, owner, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, deck.ID, got.ID)

	_, err = svc.Get(ctx, stranger, deck.ID)
	assert.ErrorIs(t, err, service.ErrDeckNotOwned)
	assert.ErrorIs(t, err, service.ErrNotOwned)

	_, err = svc.Get(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(ctx, stranger, deck.ID)
	assert.ErrorIs(t, err, service.ErrDeckNotOwned)
	assert.Empty(t, decks.Deleted)

	_, err = svc.Export(ctx, stranger, deck.ID)
	assert.ErrorIs(t, err, service.ErrDeckNotOwned)
}

func TestDeckService_Delete(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	deck := newTestDeck(t, owner, 1)
	db, _ := newMockDB(t)
	decks := &mocks.MockDeckStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
			return deck, nil
		},
	}
	svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

	require.NoError(t, svc.Delete(context.Background(), owner, deck.ID))
	assert.Equal(t, []uuid.UUID{deck.ID}, decks.Deleted)
}

func TestDeckService_Export(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	deck, err := domain.NewDeck(owner, "Verbs", []string{"Spanish", "English"}, []domain.RowRecord{
		{"Spanish": "hablar", "English": "to speak"},
	})
	require.NoError(t, err)

	db, _ := newMockDB(t)
	decks := &mocks.MockDeckStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
			return deck, nil
		},
	}
	svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

	text, err := svc.Export(context.Background(), owner, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spanish - English\nhablar - to speak", text)
}

func TestDeckService_List(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	summaries := []store.DeckSummary{{ID: uuid.New(), Name: "Verbs", RowCount: 3}}
	db, _ := newMockDB(t)
	decks := &mocks.MockDeckStore{
		ListByUserFn: func(ctx context.Context, id uuid.UUID) ([]store.DeckSummary, error) {
			assert.Equal(t, userID, id)
			return summaries, nil
		},
	}
	svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

	got, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, summaries, got)
}

func TestDeckService_Update(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	shrunk := []domain.RowRecord{{"Spanish": "uno", "English": "one"}}

	t.Run("shrinking drops stale ratings in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		deck := newTestDeck(t, owner, 3)
		decks := &mocks.MockDeckStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
				return deck, nil
			},
		}
		difficulties := &mocks.MockDifficultyStore{}
		svc := newDeckService(t, db, decks, difficulties)

		updated, err := svc.Update(context.Background(), owner, deck.ID, "Numbers",
			[]string{"Spanish", "English"}, shrunk)
		require.NoError(t, err)

		assert.Equal(t, "Numbers", updated.Name)
		assert.Len(t, updated.Rows, 1)
		assert.Equal(t, []int{1}, difficulties.DeleteFromRows)
		assert.Equal(t, 1, decks.TxCalls)
		assert.Equal(t, 1, difficulties.TxCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("growing keeps ratings and name", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		deck := newTestDeck(t, owner, 1)
		decks := &mocks.MockDeckStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
				return deck, nil
			},
		}
		difficulties := &mocks.MockDifficultyStore{}
		svc := newDeckService(t, db, decks, difficulties)

		rows := append(shrunk, domain.RowRecord{"Spanish": "dos", "English": "two"})
		updated, err := svc.Update(context.Background(), owner, deck.ID, "", []string{"Spanish", "English"}, rows)
		require.NoError(t, err)

		assert.Equal(t, "Verbs", updated.Name)
		assert.Empty(t, difficulties.DeleteFromRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rating cleanup failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		deck := newTestDeck(t, owner, 3)
		cleanupErr := errors.New("deadlock detected")
		decks := &mocks.MockDeckStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
				return deck, nil
			},
		}
		difficulties := &mocks.MockDifficultyStore{DeleteFromRowFn: func(ctx context.Context, id uuid.UUID, from int) error {
			return cleanupErr
		}}
		svc := newDeckService(t, db, decks, difficulties)

		_, err := svc.Update(context.Background(), owner, deck.ID, "", []string{"Spanish", "English"}, shrunk)
		require.Error(t, err)
		assert.ErrorIs(t, err, cleanupErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner is rejected before any write", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		deck := newTestDeck(t, owner, 2)
		decks := &mocks.MockDeckStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
				return deck, nil
			},
		}
		svc := newDeckService(t, db, decks, &mocks.MockDifficultyStore{})

		_, err := svc.Update(context.Background(), uuid.New(), deck.ID, "", []string{"a", "b"}, nil)
		assert.ErrorIs(t, err, service.ErrDeckNotOwned)
		assert.Empty(t, decks.Updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid text never opens a transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newDeckService(t, db, &mocks.MockDeckStore{}, &mocks.MockDifficultyStore{})

		_, err := svc.UpdateFromText(context.Background(), owner, uuid.New(), "", "only a header\n")
		assert.True(t, deckfmt.IsFormatError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
