package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/service"
)

// EntryHandler manages CRUD operations for diary entries.
type EntryHandler struct {
	entrySvc *service.EntryService
	logger   *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entrySvc *service.EntryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc, logger: logger}
}

// entryIDFromPath parses the {id} URL parameter. Entry IDs are numeric
// (Unix-millisecond creation instants), so anything non-numeric is a
// client error.
func entryIDFromPath(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleList returns all diary entries in stored order.
//
// HTTP: GET /api/entries
func (h *EntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entrySvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleGet returns a single entry by ID.
//
// HTTP: GET /api/entries/{id}
func (h *EntryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := entryIDFromPath(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Entry ID must be a positive number"})
		return
	}

	entry, err := h.entrySvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleCreate saves a new entry (or upserts, if the body carries an
// existing ID — the storage operation is an upsert either way).
//
// HTTP: POST /api/entries
// BODY: {"title": "...", "content": "...", "mood": "happy", ...}
//
// Responds 201 with the stored entry, including the assigned ID.
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var entry model.DiaryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.logger.Warn("invalid entry JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	saved, err := h.entrySvc.Save(r.Context(), &entry)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// HandleUpdate saves an entry under the ID in the URL. The path ID wins
// over any ID in the body, so a PUT can't silently write elsewhere.
//
// HTTP: PUT /api/entries/{id}
func (h *EntryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := entryIDFromPath(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Entry ID must be a positive number"})
		return
	}

	var entry model.DiaryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.logger.Warn("invalid entry JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}
	entry.ID = id

	saved, err := h.entrySvc.Save(r.Context(), &entry)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// HandleDelete removes an entry. Deleting an ID that doesn't exist still
// returns 204 — delete is idempotent end to end.
//
// HTTP: DELETE /api/entries/{id}
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryIDFromPath(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Entry ID must be a positive number"})
		return
	}

	if err := h.entrySvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
