package handler

import (
	"net/http"

	"github.com/Rrens/mindcare/internal/api/response"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/service"
)

// SettingsView is the client-facing settings. Keys are never sent back; the
// client only learns whether one is stored.
type SettingsView struct {
	HasAPIKey bool         `json:"hasApiKey"`
	Model     string       `json:"model"`
	Voice     domain.Voice `json:"voice"`
}

func newSettingsView(s domain.Settings) SettingsView {
	return SettingsView{HasAPIKey: s.APIKey != "", Model: s.Model, Voice: s.Voice}
}

// SettingsHandler handles settings endpoints
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the current settings, defaults included
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, newSettingsView(settings))
}

// Update replaces the stored settings. An omitted apiKey keeps the stored one.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if msg, ok := decode(r, &req); !ok {
		response.BadRequest(w, msg)
		return
	}

	settings, err := h.settingsService.Save(r.Context(), req)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, newSettingsView(settings))
}
