package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/review"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
)

// fixedSource returns its values in order, repeating the last one.
type fixedSource struct {
	mu     sync.Mutex
	values []float64
}

func (f *fixedSource) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values[0]
	if len(f.values) > 1 {
		f.values = f.values[1:]
	}
	return v
}

type reviewFixture struct {
	owner        uuid.UUID
	deck         *domain.Deck
	decks        *mocks.MockDeckStore
	difficulties *mocks.MockDifficultyStore
	settings     *mocks.MockSettingsStore
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	owner := uuid.New()
	deck, err := domain.NewDeck(owner, "Verbs", []string{"Spanish", "English", "Notes"}, []domain.RowRecord{
		{"Spanish": "hablar", "English": "to speak"},
		{"Spanish": "comer", "English": "to eat"},
		{"Spanish": "vivir", "English": "to live"},
	})
	require.NoError(t, err)

	return &reviewFixture{
		owner: owner,
		deck:  deck,
		decks: &mocks.MockDeckStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
				return deck, nil
			},
		},
		difficulties: &mocks.MockDifficultyStore{},
		settings:     &mocks.MockSettingsStore{},
	}
}

func (f *reviewFixture) service(t *testing.T, rnd review.RandSource) service.ReviewService {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	svc, err := service.NewReviewService(f.decks, f.difficulties, f.settings, nil, rnd, log)
	require.NoError(t, err)
	return svc
}

func TestNewReviewService_NilStores(t *testing.T) {
	t.Parallel()

	_, err := service.NewReviewService(nil, &mocks.MockDifficultyStore{}, &mocks.MockSettingsStore{}, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewReviewService(&mocks.MockDeckStore{}, nil, &mocks.MockSettingsStore{}, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewReviewService(&mocks.MockDeckStore{}, &mocks.MockDifficultyStore{}, nil, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	svc, err := service.NewReviewService(
		&mocks.MockDeckStore{}, &mocks.MockDifficultyStore{}, &mocks.MockSettingsStore{}, nil, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestReviewService_Next(t *testing.T) {
	t.Parallel()

	t.Run("uses stored ratings and direction", func(t *testing.T) {
		f := newReviewFixture(t)
		// Weights: hard 4, easy 1, unreported 5 -> total 10.
		f.difficulties.ListForDeckFn = func(ctx context.Context, deckID, userID uuid.UUID) (domain.Ratings, error) {
			return domain.Ratings{0: domain.DifficultyHard, 1: domain.DifficultyEasy}, nil
		}
		f.settings.GetFn = func(ctx context.Context, deckID, userID uuid.UUID) (domain.ReviewSettings, error) {
			return domain.ReviewSettings{Direction: domain.DirectionRightToLeft}, nil
		}
		// 0.9 * 10 = 9; 9 - 4 - 1 = 4 > 0, so the walk reaches row 2.
		svc := f.service(t, &fixedSource{values: []float64{0.9}})

		card, err := svc.Next(context.Background(), f.owner, f.deck.ID)
		require.NoError(t, err)

		assert.Equal(t, f.deck.ID, card.DeckID)
		assert.Equal(t, 2, card.RowIndex)
		assert.Equal(t, review.SideRight, card.Side)
		assert.Equal(t, "English", card.FrontHeader)
		assert.Equal(t, "Spanish", card.BackHeader)
		assert.Equal(t, "to live", card.Front)
	})

	t.Run("skip easy with every row easy", func(t *testing.T) {
		f := newReviewFixture(t)
		f.difficulties.ListForDeckFn = func(ctx context.Context, deckID, userID uuid.UUID) (domain.Ratings, error) {
			return domain.Ratings{
				0: domain.DifficultyEasy,
				1: domain.DifficultyEasy,
				2: domain.DifficultyEasy,
			}, nil
		}
		f.settings.GetFn = func(ctx context.Context, deckID, userID uuid.UUID) (domain.ReviewSettings, error) {
			return domain.ReviewSettings{Direction: domain.DirectionBoth, SkipEasy: true}, nil
		}
		svc := f.service(t, &fixedSource{values: []float64{0.5}})

		_, err := svc.Next(context.Background(), f.owner, f.deck.ID)
		assert.ErrorIs(t, err, review.ErrNoCandidates)
	})

	t.Run("ratings failure is wrapped", func(t *testing.T) {
		f := newReviewFixture(t)
		storeErr := errors.New("timeout")
		f.difficulties.DefaultError = storeErr
		svc := f.service(t, nil)

		_, err := svc.Next(context.Background(), f.owner, f.deck.ID)
		assert.ErrorIs(t, err, storeErr)
		var svcErr *service.ReviewServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "next", svcErr.Operation)
	})

	t.Run("non-owner", func(t *testing.T) {
		f := newReviewFixture(t)
		svc := f.service(t, nil)

		_, err := svc.Next(context.Background(), uuid.New(), f.deck.ID)
		assert.ErrorIs(t, err, service.ErrDeckNotOwned)
	})
}

func TestReviewService_Reveal(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t)
	svc := f.service(t, nil)
	ctx := context.Background()

	back, err := svc.Reveal(ctx, f.owner, f.deck.ID, 1, "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "to eat", back)

	back, err = svc.Reveal(ctx, f.owner, f.deck.ID, 1, "English")
	require.NoError(t, err)
	assert.Equal(t, "comer", back)

	_, err = svc.Reveal(ctx, f.owner, f.deck.ID, 1, "Notes")
	assert.ErrorIs(t, err, review.ErrUnknownHeader)

	_, err = svc.Reveal(ctx, f.owner, f.deck.ID, 3, "Spanish")
	assert.ErrorIs(t, err, domain.ErrRowOutOfRange)
}

func TestReviewService_Rate(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t)
	svc := f.service(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Rate(ctx, f.owner, f.deck.ID, 2, domain.DifficultyChallenging))
	require.Len(t, f.difficulties.Upserts, 1)
	assert.Equal(t, mocks.UpsertCall{
		DeckID:     f.deck.ID,
		UserID:     f.owner,
		RowIndex:   2,
		Difficulty: domain.DifficultyChallenging,
	}, f.difficulties.Upserts[0])

	err := svc.Rate(ctx, f.owner, f.deck.ID, 5, domain.DifficultyEasy)
	assert.ErrorIs(t, err, domain.ErrRowOutOfRange)

	err = svc.Rate(ctx, f.owner, f.deck.ID, 0, domain.DifficultyUnreported)
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)

	assert.Len(t, f.difficulties.Upserts, 1, "rejected ratings are not stored")
}

func TestReviewService_Settings(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t)
	svc := f.service(t, nil)
	ctx := context.Background()

	got, err := svc.Settings(ctx, f.owner, f.deck.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReviewSettings(), got)

	want := domain.ReviewSettings{Direction: domain.DirectionLeftToRight, SkipEasy: true}
	saved, err := svc.UpdateSettings(ctx, f.owner, f.deck.ID, want)
	require.NoError(t, err)
	assert.Equal(t, want, saved)
	assert.Equal(t, []domain.ReviewSettings{want}, f.settings.Saved)

	_, err = svc.UpdateSettings(ctx, f.owner, f.deck.ID, domain.ReviewSettings{Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
	assert.Len(t, f.settings.Saved, 1)

	_, err = svc.UpdateSettings(ctx, uuid.New(), f.deck.ID, want)
	assert.ErrorIs(t, err, service.ErrDeckNotOwned)
}

func TestReviewService_Statistics(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t)
	f.difficulties.ListForDeckFn = func(ctx context.Context, deckID, userID uuid.UUID) (domain.Ratings, error) {
		// Row 7 no longer exists and must not be counted.
		return domain.Ratings{0: domain.DifficultyHard, 2: domain.DifficultyHard, 7: domain.DifficultyEasy}, nil
	}
	svc := f.service(t, nil)

	stats, err := svc.Statistics(context.Background(), f.owner, f.deck.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Counts[domain.DifficultyHard])
	assert.Equal(t, 1, stats.Counts[domain.DifficultyUnreported])
	assert.Equal(t, 0, stats.Counts[domain.DifficultyEasy])
}

func TestReviewService_ConcurrentNext(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t)
	svc := f.service(t, review.NewSource(42))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			card, err := svc.Next(context.Background(), f.owner, f.deck.ID)
			if assert.NoError(t, err) {
				assert.GreaterOrEqual(t, card.RowIndex, 0)
				assert.Less(t, card.RowIndex, 3)
			}
		}()
	}
	wg.Wait()
}
