package sentiment

import (
	"strings"
	"testing"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore int
		wantLabel domain.SentimentLabel
	}{
		{"empty", "", 0, domain.SentimentNeutral},
		{"mixed", "I feel good and happy but also tired", 1, domain.SentimentPositive},
		{"negative", "I feel sad and hopeless", -2, domain.SentimentNegative},
		{"no keywords", "The weather was cloudy today", 0, domain.SentimentNeutral},
		{"case insensitive", "GREAT day, GRATEFUL for it", 2, domain.SentimentPositive},
		{"balanced", "good but bad", 0, domain.SentimentNeutral},
		{"repeats count once", "sad sad sad", -1, domain.SentimentNegative},
		{"substring match", "I am unhappy", 1, domain.SentimentPositive},
		{"bare hope is neutral", "I hope so", 0, domain.SentimentNeutral},
		{"hopeful is positive", "I feel hopeful", 1, domain.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	inputs := []string{"", "I feel good", "terrible and lonely night", strings.Repeat("calm ", 50)}
	for _, in := range inputs {
		assert.Equal(t, Analyze(in), Analyze(in), "input %q", in)
	}
}

func TestWordListsDisjoint(t *testing.T) {
	neg := make(map[string]bool, len(negativeWords))
	for _, w := range negativeWords {
		neg[w] = true
	}
	for _, w := range positiveWords {
		assert.False(t, neg[w], "word %q is in both lists", w)
	}
}

func TestAnalyzeConversation_UserTurnsOnly(t *testing.T) {
	messages := []domain.Message{
		{Role: domain.RoleAssistant, Content: "Hello, I hope you have a great and happy day"},
		{Role: domain.RoleUser, Content: "I feel sad"},
		{Role: domain.RoleAssistant, Content: "That sounds bad. Things will get better."},
		{Role: domain.RoleUser, Content: "and lonely"},
	}

	got := AnalyzeConversation(messages)
	assert.Equal(t, -2, got.Score)
	assert.Equal(t, domain.SentimentNegative, got.Label)
}

func TestAnalyzeConversation_NoUserTurns(t *testing.T) {
	got := AnalyzeConversation([]domain.Message{{Role: domain.RoleAssistant, Content: "great"}})
	assert.Equal(t, domain.SentimentResult{Label: domain.SentimentNeutral, Score: 0}, got)
}
