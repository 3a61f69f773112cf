package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
)

// DeckHandler handles deck management HTTP requests
type DeckHandler struct {
	decks  service.DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckService, logger *slog.Logger) *DeckHandler {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// Routes registers the deck routes on r, which is mounted at /api/decks.
func (h *DeckHandler) Routes(r chi.Router) {
	r.Get("/", h.ListDecks)
	r.Post("/", h.CreateDeck)
	r.Post("/import", h.ImportDeck)
	r.Get("/{id}", h.GetDeck)
	r.Put("/{id}", h.UpdateDeck)
	r.Delete("/{id}", h.DeleteDeck)
	r.Get("/{id}/export", h.ExportDeck)
}

// ListDecks handles GET /api/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	summaries, err := h.decks.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{Decks: summaries})
}

// CreateDeck handles POST /api/decks with either text or structured content.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var (
		deck *domain.Deck
		err  error
	)
	if req.Text != "" {
		deck, err = h.decks.CreateFromText(r.Context(), userID, req.Name, req.Text)
	} else {
		deck, err = h.decks.Create(r.Context(), userID, req.Name, req.Headers, req.Rows)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	log.Debug("deck created", slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// ImportDeck handles POST /api/decks/import. The body is deck text; the name
// comes from the name query parameter.
func (h *DeckHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid name: required field")
		return
	}

	text, err := shared.ReadText(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.CreateFromText(r.Context(), userID, name, text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// GetDeck handles GET /api/decks/{id}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	deck, err := h.decks.Get(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// UpdateDeck handles PUT /api/decks/{id}. The content is replaced whole;
// ratings of rows beyond the new row count are dropped.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req DeckContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var (
		deck *domain.Deck
		err  error
	)
	if req.Text != "" {
		deck, err = h.decks.UpdateFromText(r.Context(), userID, deckID, req.Name, req.Text)
	} else {
		deck, err = h.decks.Update(r.Context(), userID, deckID, req.Name, req.Headers, req.Rows)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /api/decks/{id}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.decks.Delete(r.Context(), userID, deckID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportDeck handles GET /api/decks/{id}/export
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	text, err := h.decks.Export(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export deck")
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, text)
}
