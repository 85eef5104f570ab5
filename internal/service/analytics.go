package service

import (
	"context"
	"math"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/presession"
)

// DateLayout formats analytics dates
const DateLayout = "2006-01-02"

// Point is one session in the analytics time series
type Point struct {
	Date           string  `json:"date"`
	SentimentScore int     `json:"sentimentScore"`
	DepressionRisk float64 `json:"depressionRisk"`
}

// LastSessionSummary describes the most recent session
type LastSessionSummary struct {
	SessionID      int64                 `json:"sessionId"`
	Date           string                `json:"date"`
	Label          domain.SentimentLabel `json:"label"`
	SentimentScore int                   `json:"sentimentScore"`
	MessageCount   int                   `json:"messageCount"`
}

// Analytics is the dashboard payload
type Analytics struct {
	Points      []Point             `json:"points"`
	LastSession *LastSessionSummary `json:"lastSession"`
}

// Points maps sessions to one point each, in stored order. Sessions without a
// questionnaire score get the neutral risk.
func Points(sessions []domain.Session) []Point {
	points := make([]Point, 0, len(sessions))
	for _, s := range sessions {
		risk := presession.NeutralWellbeing
		if s.Presession != nil {
			risk = s.Presession.DepressionRisk
		}
		points = append(points, Point{
			Date:           s.CreatedAt.Format(DateLayout),
			SentimentScore: s.Analysis.Score,
			DepressionRisk: round2(risk),
		})
	}
	return points
}

// Summarize describes the last session, nil when there is none
func Summarize(sessions []domain.Session) *LastSessionSummary {
	if len(sessions) == 0 {
		return nil
	}
	last := sessions[len(sessions)-1]
	return &LastSessionSummary{
		SessionID:      last.ID,
		Date:           last.CreatedAt.Format(DateLayout),
		Label:          last.Analysis.Label,
		SentimentScore: last.Analysis.Score,
		MessageCount:   len(last.Messages),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AnalyticsService builds the dashboard from session history
type AnalyticsService struct {
	sessions domain.SessionRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(sessions domain.SessionRepository) *AnalyticsService {
	return &AnalyticsService{sessions: sessions}
}

// Build loads every session and aggregates it
func (s *AnalyticsService) Build(ctx context.Context) (*Analytics, error) {
	sessions, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Points:      Points(sessions),
		LastSession: Summarize(sessions),
	}, nil
}
