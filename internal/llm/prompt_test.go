package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRecommendationPrompt(t *testing.T) {
	prompt := BuildRecommendationPrompt(RecommendationInput{
		SentimentLabel: "negative",
		SentimentScore: -2,
		RiskPercent:    81,
		Transcript:     "I can't sleep",
	})

	assert.Contains(t, prompt, "negative (sentiment score -2)")
	assert.Contains(t, prompt, "81%")
	assert.Contains(t, prompt, "I can't sleep")

	empty := BuildRecommendationPrompt(RecommendationInput{SentimentLabel: "neutral"})
	assert.Contains(t, empty, "(no conversation recorded)")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		max      int
		expected string
	}{
		{"under limit", "calm", 10, "calm"},
		{"exact", "calm", 4, "calm"},
		{"cut", "breathe", 3, "bre…"},
		{"multibyte", "héllo", 2, "hé…"},
		{"disabled", "breathe", 0, "breathe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.in, tt.max))
		})
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "  You are doing well.  ", "You are doing well."},
		{"fenced", "```\n• Walk\n• Rest\n```", "• Walk\n• Rest"},
		{"fenced with info", "```markdown\n# Tips\n```", "# Tips"},
		{"inline fence kept", "Try ```this``` today", "Try ```this``` today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanReply(tt.in))
		})
	}
}
