package handler

import (
	"log/slog"
	"net/http"

	"tilboard/internal/domain/services"
	"tilboard/internal/httputil"
)

// CardHandler handles card HTTP requests
type CardHandler struct {
	cardService    services.CardService
	cardTagService services.CardTagService
	logger         *slog.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService services.CardService, cardTagService services.CardTagService, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardService:    cardService,
		cardTagService: cardTagService,
		logger:         logger,
	}
}

// CreateCard appends a card to a column
// POST /api/columns/{id}/cards
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	columnID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), columnID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, card)
}

// GetCard retrieves a card with its tags
// GET /api/cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, card)
}

// ListCards retrieves every card of a project in board order
// GET /api/projects/{id}/cards
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), projectID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cards)
}

// UpdateCard updates a card's title and content
// PATCH /api/cards/{id}
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, card)
}

// MoveCard relocates a card within or across columns
// PUT /api/cards/{id}/move
func (h *CardHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.MoveCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.cardService.MoveCard(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, card)
}

// DeleteCard deletes a card and compacts its column
// DELETE /api/cards/{id}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTags retrieves the tags linked to a card
// GET /api/cards/{id}/tags
func (h *CardHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	tags, err := h.cardTagService.ListCardTags(r.Context(), cardID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// AddTag links a tag to a card
// POST /api/cards/{id}/tags/{tagID}
func (h *CardHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := requirePathValue(w, r, "tagID")
	if !ok {
		return
	}

	card, err := h.cardTagService.AddTagToCard(r.Context(), cardID, tagID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, card)
}

// RemoveTag unlinks a tag from a card
// DELETE /api/cards/{id}/tags/{tagID}
func (h *CardHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := requirePathValue(w, r, "tagID")
	if !ok {
		return
	}

	if err := h.cardTagService.RemoveTagFromCard(r.Context(), cardID, tagID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
