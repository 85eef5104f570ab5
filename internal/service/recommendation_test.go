package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func lastSessionFixture() *domain.Session {
	return &domain.Session{
		ID:        1700000000000,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Messages: []domain.Message{
			{Role: domain.RoleAssistant, Content: "Hello"},
			{Role: domain.RoleUser, Content: strings.Repeat("I feel tired. ", 50)},
		},
		Analysis:   domain.SentimentResult{Label: domain.SentimentNegative, Score: -1},
		Presession: &domain.PreSessionScore{AverageWellbeing: 0.3, DepressionRisk: 0.7},
	}
}

func TestRecommendationService_Generate(t *testing.T) {
	ctx := context.Background()
	settings := domain.Settings{APIKey: "k", Model: "m"}

	sessions := new(MockSessionRepository)
	sessions.On("LoadLast", ctx).Return(lastSessionFixture(), nil)
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Load", ctx).Return(settings, nil)

	var prompt string
	chat := new(MockChatCompleter)
	chat.On("Complete", ctx, settings, llm.RecommendationSystemPrompt, mock.Anything).
		Run(func(args mock.Arguments) {
			msgs := args.Get(3).([]domain.Message)
			prompt = msgs[0].Content
		}).
		Return("# Plan\n• Rest early", nil)

	svc := NewRecommendationService(sessions, settingsRepo, chat, nil, 100)
	recs := svc.Generate(ctx)

	assert.False(t, recs.Fallback)
	assert.Equal(t, "# Plan\n• Rest early", recs.Text)
	require.Len(t, recs.Blocks, 2)
	assert.Equal(t, int64(1700000000000), recs.SessionID)

	assert.Contains(t, prompt, "negative (sentiment score -1)")
	assert.Contains(t, prompt, "70%")
	assert.Contains(t, prompt, "…")
	assert.NotContains(t, prompt, strings.Repeat("I feel tired. ", 50))
}

func TestRecommendationService_AlwaysFailingClient(t *testing.T) {
	ctx := context.Background()

	sessions := new(MockSessionRepository)
	sessions.On("LoadLast", ctx).Return(lastSessionFixture(), nil)
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Load", ctx).Return(domain.Settings{Model: "m"}, nil)

	chat := new(MockChatCompleter)
	chat.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", &llm.StatusError{Provider: "openrouter", StatusCode: 500, Body: "boom"})

	recs := NewRecommendationService(sessions, settingsRepo, chat, nil, 2000).Generate(ctx)
	assert.True(t, recs.Fallback)
	assert.Equal(t, FallbackTips, recs.Text)
	assert.Equal(t, ParseTips(FallbackTips), recs.Blocks)
}

func TestRecommendationService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	chat := new(MockChatCompleter)

	t.Run("settings", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepository)
		settingsRepo.On("Load", ctx).Return(domain.Settings{}, errors.New("down"))

		recs := NewRecommendationService(new(MockSessionRepository), settingsRepo, chat, nil, 0).Generate(ctx)
		assert.True(t, recs.Fallback)
	})

	t.Run("sessions", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepository)
		settingsRepo.On("Load", ctx).Return(domain.Settings{}, nil)
		sessions := new(MockSessionRepository)
		sessions.On("LoadLast", ctx).Return(nil, errors.New("down"))

		recs := NewRecommendationService(sessions, settingsRepo, chat, nil, 0).Generate(ctx)
		assert.True(t, recs.Fallback)
	})

	chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendationService_NoSessionUsesNeutralDefaults(t *testing.T) {
	ctx := context.Background()

	sessions := new(MockSessionRepository)
	sessions.On("LoadLast", ctx).Return(nil, nil)
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Load", ctx).Return(domain.Settings{APIKey: "k"}, nil)

	chat := new(MockChatCompleter)
	chat.On("Complete", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(msgs []domain.Message) bool {
		return strings.Contains(msgs[0].Content, "neutral") && strings.Contains(msgs[0].Content, "50%")
	})).Return("• Walk", nil)

	cache := new(MockRecommendationCache)
	recs := NewRecommendationService(sessions, settingsRepo, chat, cache, 0).Generate(ctx)
	assert.False(t, recs.Fallback)

	// Nothing is cached without a session to key it on
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendationService_Cache(t *testing.T) {
	ctx := context.Background()
	settings := domain.Settings{APIKey: "k", Model: "m"}

	sessions := new(MockSessionRepository)
	sessions.On("LoadLast", ctx).Return(lastSessionFixture(), nil)
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Load", ctx).Return(settings, nil)
	keyFn := func(id int64, model, transcript string) string { return "key" }

	t.Run("hit", func(t *testing.T) {
		chat := new(MockChatCompleter)
		cache := new(MockRecommendationCache)
		cache.On("Get", ctx, "key").Return("• Cached tip", true, nil)

		recs := NewRecommendationService(sessions, settingsRepo, chat, cache, 0).WithCacheKey(keyFn).Generate(ctx)
		assert.True(t, recs.Cached)
		assert.Equal(t, "• Cached tip", recs.Text)
		chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss then store", func(t *testing.T) {
		chat := new(MockChatCompleter)
		chat.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("• Fresh tip", nil)
		cache := new(MockRecommendationCache)
		cache.On("Get", ctx, "key").Return("", false, nil)
		cache.On("Set", ctx, "key", "• Fresh tip").Return(nil)

		recs := NewRecommendationService(sessions, settingsRepo, chat, cache, 0).WithCacheKey(keyFn).Generate(ctx)
		assert.False(t, recs.Cached)
		assert.Equal(t, "• Fresh tip", recs.Text)
		cache.AssertExpectations(t)
	})

	t.Run("fallback is not cached", func(t *testing.T) {
		chat := new(MockChatCompleter)
		chat.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("down"))
		cache := new(MockRecommendationCache)
		cache.On("Get", ctx, "key").Return("", false, errors.New("redis down"))

		recs := NewRecommendationService(sessions, settingsRepo, chat, cache, 0).WithCacheKey(keyFn).Generate(ctx)
		assert.True(t, recs.Fallback)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}
