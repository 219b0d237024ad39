package handler

import (
	"log/slog"
	"net/http"

	"tilboard/internal/defaults"
	"tilboard/internal/domain/services"
	"tilboard/internal/httputil"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService services.TagService
	registry   *defaults.Registry
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService services.TagService, registry *defaults.Registry, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		registry:   registry,
		logger:     logger,
	}
}

// CreateTag creates a tag in a project
// POST /api/projects/{id}/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), projectID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// ListTags retrieves a project's tags
// GET /api/projects/{id}/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(r.Context(), projectID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// ListColors returns the tag color palette
// GET /api/tag-colors
func (h *TagHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.TagColors())
}

// UpdateTag updates a tag's name and color
// PATCH /api/tags/{id}
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag deletes a tag and its card links
// DELETE /api/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathValue(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
