package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/mindcare/internal/api/response"
	"github.com/Rrens/mindcare/internal/service"
	"github.com/go-chi/chi/v5"
)

// SendMessageRequest is typed user input for a live conversation
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// TherapyResponse describes a live conversation
type TherapyResponse struct {
	ID string `json:"id"`
	service.Snapshot
}

// TherapyHandler handles live therapy conversations
type TherapyHandler struct {
	therapyService *service.TherapyService
}

// NewTherapyHandler creates a new therapy handler
func NewTherapyHandler(therapyService *service.TherapyService) *TherapyHandler {
	return &TherapyHandler{therapyService: therapyService}
}

// Start opens a conversation
func (h *TherapyHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, controller, err := h.therapyService.Start(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Created(w, TherapyResponse{ID: id, Snapshot: controller.Snapshot()})
}

// Get returns the state and history of a conversation
func (h *TherapyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	controller, err := h.therapyService.Get(id)
	if err != nil {
		therapyError(w, err)
		return
	}

	response.OK(w, TherapyResponse{ID: id, Snapshot: controller.Snapshot()})
}

// StartListening switches the conversation to listening
func (h *TherapyHandler) StartListening(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*service.Controller).StartListening)
}

// StopListening switches the conversation back to idle
func (h *TherapyHandler) StopListening(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*service.Controller).StopListening)
}

func (h *TherapyHandler) transition(w http.ResponseWriter, r *http.Request, fn func(*service.Controller) error) {
	id := chi.URLParam(r, "id")
	controller, err := h.therapyService.Get(id)
	if err != nil {
		therapyError(w, err)
		return
	}

	if err := fn(controller); err != nil {
		therapyError(w, err)
		return
	}

	response.OK(w, TherapyResponse{ID: id, Snapshot: controller.Snapshot()})
}

// SendMessage sends typed input and returns the assistant reply
func (h *TherapyHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	controller, err := h.therapyService.Get(chi.URLParam(r, "id"))
	if err != nil {
		therapyError(w, err)
		return
	}

	var req SendMessageRequest
	if msg, ok := decode(r, &req); !ok {
		response.BadRequest(w, msg)
		return
	}

	reply, err := controller.Send(r.Context(), req.Text)
	if err != nil {
		therapyError(w, err)
		return
	}

	response.OK(w, reply)
}

// End finishes the conversation and returns the stored session
func (h *TherapyHandler) End(w http.ResponseWriter, r *http.Request) {
	session, err := h.therapyService.End(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		therapyError(w, err)
		return
	}

	response.OK(w, session)
}

func therapyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrEmptyInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrSessionEnded),
		errors.Is(err, service.ErrReplyPending),
		errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
