package service

import (
	"context"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/presession"
	"github.com/rs/zerolog/log"
)

// PresessionService scores the questionnaire and hands the result to the
// next therapy session
type PresessionService struct {
	handoffs domain.HandoffRepository
	now      func() time.Time
}

// NewPresessionService creates a new pre-session service
func NewPresessionService(handoffs domain.HandoffRepository) *PresessionService {
	return &PresessionService{handoffs: handoffs, now: time.Now}
}

// Questions returns the questionnaire definition
func (s *PresessionService) Questions() []presession.Question {
	return presession.Questions
}

// Submit scores answers and replaces any pending handoff
func (s *PresessionService) Submit(ctx context.Context, answers domain.QuestionnaireAnswer) (domain.PreSessionScore, error) {
	now := s.now()
	score := presession.Score(answers, now)

	handoff := &domain.Handoff{
		Values:    answers,
		Scoring:   score,
		StartedAt: now,
	}
	if err := s.handoffs.Put(ctx, handoff); err != nil {
		return score, err
	}

	log.Info().
		Float64("average_wellbeing", score.AverageWellbeing).
		Float64("depression_risk", score.DepressionRisk).
		Msg("pre-session questionnaire scored")

	return score, nil
}
