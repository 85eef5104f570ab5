package handler

import (
	"net/http"

	"github.com/Rrens/mindcare/internal/api/response"
	"github.com/Rrens/mindcare/internal/service"
)

// InsightsHandler serves analytics and recommendations derived from history
type InsightsHandler struct {
	analyticsService      *service.AnalyticsService
	recommendationService *service.RecommendationService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(analyticsService *service.AnalyticsService, recommendationService *service.RecommendationService) *InsightsHandler {
	return &InsightsHandler{
		analyticsService:      analyticsService,
		recommendationService: recommendationService,
	}
}

// Analytics returns the sentiment and risk time series
func (h *InsightsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsService.Build(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, analytics)
}

// Recommendations returns self-care tips. It always succeeds; the fallback
// flag marks the built-in tips.
func (h *InsightsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.recommendationService.Generate(r.Context()))
}
