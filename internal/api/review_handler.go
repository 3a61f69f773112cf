package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/review"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
)

// ReviewHandler handles review session, rating and settings requests
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviews == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("review service cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// Routes registers the review routes on r, which is mounted at /api/decks.
func (h *ReviewHandler) Routes(r chi.Router) {
	r.Get("/{id}/review/next", h.NextCard)
	r.Get("/{id}/review/{row}/reveal", h.RevealCard)
	r.Get("/{id}/difficulties", h.GetRatings)
	r.Post("/{id}/difficulties", h.RateRow)
	r.Get("/{id}/settings", h.GetSettings)
	r.Put("/{id}/settings", h.UpdateSettings)
	r.Get("/{id}/statistics", h.GetStatistics)
}

// NextCard handles GET /api/decks/{id}/review/next
func (h *ReviewHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	card, err := h.reviews.Next(r.Context(), userID, deckID)
	if err != nil {
		if errors.Is(err, review.ErrNoCandidates) {
			log.Debug("no cards available", slog.String("deck_id", deckID.String()))
		}
		HandleAPIError(w, r, err, "Failed to get next card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// RevealCard handles GET /api/decks/{id}/review/{row}/reveal?front=H
func (h *ReviewHandler) RevealCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	row, err := getPathRow(r, "row")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	front := r.URL.Query().Get("front")
	if front == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid front: required field")
		return
	}

	back, err := h.reviews.Reveal(r.Context(), userID, deckID, row, front)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reveal card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RevealResponse{RowIndex: row, Back: back})
}

// GetRatings handles GET /api/decks/{id}/difficulties
func (h *ReviewHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	ratings, err := h.reviews.Ratings(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get ratings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RatingsResponse{DeckID: deckID, Ratings: ratings})
}

// RateRow handles POST /api/decks/{id}/difficulties
func (h *ReviewHandler) RateRow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req RateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	d, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.reviews.Rate(r.Context(), userID, deckID, *req.RowIndex, d); err != nil {
		HandleAPIError(w, r, err, "Failed to save rating")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /api/decks/{id}/settings
func (h *ReviewHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	settings, err := h.reviews.Settings(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get settings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/decks/{id}/settings
func (h *ReviewHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	settings, err := h.reviews.UpdateSettings(r.Context(), userID, deckID, domain.ReviewSettings{
		Direction: domain.Direction(req.Direction),
		SkipEasy:  req.SkipEasy,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save settings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// GetStatistics handles GET /api/decks/{id}/statistics
func (h *ReviewHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	stats, err := h.reviews.Statistics(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
