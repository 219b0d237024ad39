package handler

import (
	"log/slog"
	"net/http"

	"tilboard/internal/domain/services"
	"tilboard/internal/httputil"
)

// BoardHandler handles board HTTP requests
type BoardHandler struct {
	boardService services.BoardService
	logger       *slog.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService services.BoardService, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// CreateBoard creates the project's board with the default columns
// POST /api/projects/{id}/board
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateBoardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.boardService.CreateBoard(r.Context(), projectID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, board)
}

// GetBoardByProject retrieves the project's board with columns and cards
// GET /api/projects/{id}/board
func (h *BoardHandler) GetBoardByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	view, err := h.boardService.GetBoardByProject(r.Context(), projectID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetBoard retrieves a board with columns and cards
// GET /api/boards/{id}
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	view, err := h.boardService.GetBoard(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// UpdateBoard renames a board
// PATCH /api/boards/{id}
func (h *BoardHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateBoardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.boardService.UpdateBoard(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, board)
}

// DeleteBoard deletes a board and its contents
// DELETE /api/boards/{id}
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
