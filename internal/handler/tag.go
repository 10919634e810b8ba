package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/paperpal/internal/service"
)

// TagHandler exposes the global tag registry.
type TagHandler struct {
	tagSvc *service.TagService
	logger *slog.Logger
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(tagSvc *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{tagSvc: tagSvc, logger: logger}
}

// HandleList returns all tags in insertion order.
//
// HTTP: GET /api/tags
func (h *TagHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

// HandleAdd registers a new tag name.
//
// HTTP: POST /api/tags
// BODY: {"name": "holiday"}
func (h *TagHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid tag JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	tag, err := h.tagSvc.Add(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}
