package handler

import (
	"log/slog"
	"net/http"

	"tilboard/internal/domain/services"
	"tilboard/internal/httputil"
)

// ColumnHandler handles column HTTP requests
type ColumnHandler struct {
	columnService services.ColumnService
	logger        *slog.Logger
}

// NewColumnHandler creates a new column handler
func NewColumnHandler(columnService services.ColumnService, logger *slog.Logger) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
		logger:        logger,
	}
}

// CreateColumn appends a column to a board
// POST /api/boards/{id}/columns
func (h *ColumnHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	boardID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateColumnRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	column, err := h.columnService.CreateColumn(r.Context(), boardID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, column)
}

// ListColumns retrieves a board's columns in position order
// GET /api/boards/{id}/columns
func (h *ColumnHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	boardID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	columns, err := h.columnService.ListColumns(r.Context(), boardID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, columns)
}

// ReorderColumns replaces the board's column order
// PUT /api/boards/{id}/columns/positions
func (h *ColumnHandler) ReorderColumns(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	boardID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.ReorderColumnsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	columns, err := h.columnService.ReorderColumns(r.Context(), boardID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, columns)
}

// UpdateColumn renames a column
// PATCH /api/columns/{id}
func (h *ColumnHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateColumnRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	column, err := h.columnService.UpdateColumn(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, column)
}

// DeleteColumn deletes a column with its cards
// DELETE /api/columns/{id}
func (h *ColumnHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
