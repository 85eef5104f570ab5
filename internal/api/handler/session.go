package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rrens/mindcare/internal/api/response"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/service"
	"github.com/go-chi/chi/v5"
)

// SessionHandler handles completed session history
type SessionHandler struct {
	historyService *service.HistoryService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(historyService *service.HistoryService) *SessionHandler {
	return &SessionHandler{historyService: historyService}
}

// List returns all stored sessions, oldest first
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.historyService.List(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, sessions)
}

// Last returns the most recent session
func (h *SessionHandler) Last(w http.ResponseWriter, r *http.Request) {
	session, err := h.historyService.Last(r.Context())
	if err != nil {
		sessionError(w, err)
		return
	}

	response.OK(w, session)
}

// Get returns one session by id
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid session ID")
		return
	}

	session, err := h.historyService.Find(r.Context(), id)
	if err != nil {
		sessionError(w, err)
		return
	}

	response.OK(w, session)
}

// Clear deletes all sessions and settings
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.historyService.Clear(r.Context()); err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.NoContent(w)
}

func sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		response.NotFound(w, "session not found")
		return
	}
	response.InternalError(w, err.Error())
}
