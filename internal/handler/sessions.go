// Package handler exposes the HTTP endpoints of the assistant platform.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hearthline/estate-assistant/internal/middleware"
	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/internal/service"
	"github.com/hearthline/estate-assistant/pkg/logger"
)

// SessionHandler handles conversation session endpoints.
type SessionHandler struct {
	manager *service.SessionManager
	logger  *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(manager *service.SessionManager, log *logger.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logger: log}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.Create()

	writeJSON(w, http.StatusCreated, &model.SessionResponse{
		ID:       sess.ID(),
		State:    sess.State(),
		Messages: sess.Transcript(),
	})
}

// Get handles GET /api/v1/sessions/{id} — the transcript plus turn
// state, for rendering.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, &model.SessionResponse{
		ID:       sess.ID(),
		State:    sess.State(),
		Messages: sess.Transcript(),
	})
}

// Submit handles POST /api/v1/sessions/{id}/messages
//
// Submission is fire-and-forget: blank input and input arriving while a
// turn is in flight are silently ignored, and accepted input shows up in
// the transcript once the assistant turn completes. The response carries
// the transcript as of acceptance.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateUtterance(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess.Submit(req.Text)

	writeJSON(w, http.StatusAccepted, &model.SessionResponse{
		ID:       sess.ID(),
		State:    sess.State(),
		Messages: sess.Transcript(),
	})
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.manager.Delete(id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("failed to delete session")
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
