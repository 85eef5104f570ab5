package handler

import (
	"net/http"

	"github.com/Rrens/mindcare/internal/api/response"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/service"
)

// PresessionRequest carries the questionnaire answers. Unanswered questions
// are left empty.
type PresessionRequest struct {
	Mood    string `json:"mood" validate:"omitempty,option=mood"`
	Sleep   string `json:"sleep" validate:"omitempty,option=sleep"`
	Energy  string `json:"energy" validate:"omitempty,option=energy"`
	Anxiety string `json:"anxiety" validate:"omitempty,option=anxiety"`
	Goal    string `json:"goal" validate:"max=500"`
}

// Answers keeps only the answered questions
func (r PresessionRequest) Answers() domain.QuestionnaireAnswer {
	answers := domain.QuestionnaireAnswer{}
	for id, value := range map[string]string{
		domain.QuestionMood:    r.Mood,
		domain.QuestionSleep:   r.Sleep,
		domain.QuestionEnergy:  r.Energy,
		domain.QuestionAnxiety: r.Anxiety,
		domain.QuestionGoal:    r.Goal,
	} {
		if value != "" {
			answers[id] = value
		}
	}
	return answers
}

// PresessionHandler handles the pre-session questionnaire
type PresessionHandler struct {
	presessionService *service.PresessionService
}

// NewPresessionHandler creates a new pre-session handler
func NewPresessionHandler(presessionService *service.PresessionService) *PresessionHandler {
	return &PresessionHandler{presessionService: presessionService}
}

// Questions returns the questionnaire definition
func (h *PresessionHandler) Questions(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.presessionService.Questions())
}

// Submit scores the answers and stores them for the next therapy session
func (h *PresessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req PresessionRequest
	if msg, ok := decode(r, &req); !ok {
		response.BadRequest(w, msg)
		return
	}

	score, err := h.presessionService.Submit(r.Context(), req.Answers())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, score)
}
