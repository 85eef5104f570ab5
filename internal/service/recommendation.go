package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/llm"
	"github.com/Rrens/mindcare/internal/presession"
	"github.com/rs/zerolog/log"
)

// FallbackTips is served whenever tips cannot be generated
const FallbackTips = `# Daily Wellness Tips

• **Practice Deep Breathing**: Try the 4-7-8 technique - inhale for 4, hold for 7, exhale for 8. Perfect for instant calm.

• **Daily Gratitude Journal**: Write down 3 things you're grateful for each morning. This simple habit rewires your brain for positivity.

• **Nature Connection**: Spend 10-15 minutes outdoors daily. Even a brief walk can significantly boost mood and reduce stress.

• **Mindful Movement**: Gentle yoga or stretching helps release physical tension and mental stress.

• **Social Connection**: Reach out to one friend or family member today. Human connection is vital for emotional wellbeing.

• **Digital Detox Hour**: Set aside one hour before bed without screens. Use this time for reading, meditation, or relaxation.

## Recommended Reading

• **"Feeling Good" by David D. Burns** - Excellent for understanding cognitive behavioral techniques
• **"The Happiness Trap" by Russ Harris** - Practical acceptance and commitment therapy approaches
• **"Atomic Habits" by James Clear** - Build sustainable positive habits that stick`

// RecommendationCache stores generated tips. Implementations may be absent.
type RecommendationCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, tips string) error
}

// Recommendations is the tips payload
type Recommendations struct {
	SessionID int64   `json:"sessionId,omitempty"`
	Text      string  `json:"text"`
	Blocks    []Block `json:"blocks"`
	Fallback  bool    `json:"fallback"`
	Cached    bool    `json:"cached"`
}

// RecommendationService turns the last session into self-care tips
type RecommendationService struct {
	sessions           domain.SessionRepository
	settings           domain.SettingsRepository
	chat               ChatCompleter
	cache              RecommendationCache
	transcriptMaxChars int
	keyFunc            func(sessionID int64, model, transcript string) string
}

// NewRecommendationService creates a new recommendation service. cache may be nil.
func NewRecommendationService(
	sessions domain.SessionRepository,
	settings domain.SettingsRepository,
	chat ChatCompleter,
	cache RecommendationCache,
	transcriptMaxChars int,
) *RecommendationService {
	return &RecommendationService{
		sessions:           sessions,
		settings:           settings,
		chat:               chat,
		cache:              cache,
		transcriptMaxChars: transcriptMaxChars,
		keyFunc: func(sessionID int64, model, transcript string) string {
			return fmt.Sprintf("%d:%s:%d", sessionID, model, len(transcript))
		},
	}
}

// WithCacheKey overrides how cache keys are derived
func (s *RecommendationService) WithCacheKey(fn func(sessionID int64, model, transcript string) string) *RecommendationService {
	s.keyFunc = fn
	return s
}

// Generate never fails: any problem yields the fallback tips
func (s *RecommendationService) Generate(ctx context.Context) *Recommendations {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load settings for recommendations")
		return fallbackRecommendations(0)
	}

	last, err := s.sessions.LoadLast(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load last session for recommendations")
		return fallbackRecommendations(0)
	}

	in := llm.RecommendationInput{
		SentimentLabel: string(domain.SentimentNeutral),
		RiskPercent:    percent(presession.NeutralWellbeing),
	}
	var sessionID int64
	if last != nil {
		sessionID = last.ID
		in.SentimentLabel = string(last.Analysis.Label)
		in.SentimentScore = last.Analysis.Score
		if last.Presession != nil {
			in.RiskPercent = percent(last.Presession.DepressionRisk)
		}
		in.Transcript = llm.Truncate(transcript(last.Messages), s.transcriptMaxChars)
	}

	key := s.keyFunc(sessionID, settings.Model, in.Transcript)
	if s.cache != nil && last != nil {
		if tips, ok, err := s.cache.Get(ctx, key); err != nil {
			log.Warn().Err(err).Msg("recommendation cache read failed")
		} else if ok {
			return &Recommendations{SessionID: sessionID, Text: tips, Blocks: ParseTips(tips), Cached: true}
		}
	}

	messages := []domain.Message{{Role: domain.RoleUser, Content: llm.BuildRecommendationPrompt(in)}}
	tips, err := s.chat.Complete(ctx, settings, llm.RecommendationSystemPrompt, messages)
	if err != nil || strings.TrimSpace(tips) == "" {
		log.Warn().Err(err).Int64("session_id", sessionID).Msg("recommendation generation failed, serving fallback tips")
		return fallbackRecommendations(sessionID)
	}

	if s.cache != nil && last != nil {
		if err := s.cache.Set(ctx, key, tips); err != nil {
			log.Warn().Err(err).Msg("recommendation cache write failed")
		}
	}

	return &Recommendations{SessionID: sessionID, Text: tips, Blocks: ParseTips(tips)}
}

func fallbackRecommendations(sessionID int64) *Recommendations {
	return &Recommendations{
		SessionID: sessionID,
		Text:      FallbackTips,
		Blocks:    ParseTips(FallbackTips),
		Fallback:  true,
	}
}

func transcript(messages []domain.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}

func percent(risk float64) int {
	return int(math.Round(risk * 100))
}
