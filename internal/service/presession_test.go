package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPresessionService_Submit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	answers := domain.QuestionnaireAnswer{
		domain.QuestionMood:    "Very positive",
		domain.QuestionSleep:   "Very good",
		domain.QuestionEnergy:  "Very high",
		domain.QuestionAnxiety: "None",
		domain.QuestionGoal:    "Sleep better",
	}

	t.Run("success", func(t *testing.T) {
		repo := new(MockHandoffRepository)
		repo.On("Put", ctx, mock.MatchedBy(func(h *domain.Handoff) bool {
			return h.StartedAt.Equal(now) && h.Values[domain.QuestionGoal] == "Sleep better" && h.Scoring.AverageWellbeing == 1
		})).Return(nil)

		svc := NewPresessionService(repo)
		svc.now = func() time.Time { return now }

		score, err := svc.Submit(ctx, answers)
		require.NoError(t, err)
		assert.Equal(t, 1.0, score.AverageWellbeing)
		assert.Equal(t, 0.0, score.DepressionRisk)
		repo.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockHandoffRepository)
		repo.On("Put", ctx, mock.Anything).Return(errors.New("down"))

		_, err := NewPresessionService(repo).Submit(ctx, answers)
		assert.Error(t, err)
	})
}

func TestPresessionService_Questions(t *testing.T) {
	questions := NewPresessionService(new(MockHandoffRepository)).Questions()
	require.Len(t, questions, 5)
	assert.Equal(t, domain.QuestionMood, questions[0].ID)
}
