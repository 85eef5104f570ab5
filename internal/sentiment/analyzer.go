// Package sentiment tags conversation text with a coarse polarity by keyword
// counting.
//
// Matching is plain case-insensitive substring containment: there is no
// tokenization, negation handling or stemming, so "not happy" counts as
// positive and "unhappy" counts as positive too. Each listed word contributes
// at most once per text regardless of how often it occurs.
// The positive list carries "hopeful" instead of "hope" so that "hopeless"
// is not scored as positive; a bare "hope" is neutral.
package sentiment

import (
	"strings"

	"github.com/Rrens/mindcare/internal/domain"
)

var positiveWords = []string{
	"good",
	"great",
	"happy",
	"joy",
	"hopeful",
	"calm",
	"relieved",
	"better",
	"improved",
	"love",
	"grateful",
	"okay",
}

var negativeWords = []string{
	"sad",
	"depressed",
	"anxious",
	"worried",
	"angry",
	"bad",
	"worse",
	"terrible",
	"hopeless",
	"tired",
	"lonely",
	"cry",
	"suicidal",
}

// Analyze scores text: +1 for every positive word it contains, -1 for every
// negative word it contains.
func Analyze(text string) domain.SentimentResult {
	if text == "" {
		return domain.SentimentResult{Label: domain.SentimentNeutral, Score: 0}
	}

	lowered := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lowered, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lowered, w) {
			score--
		}
	}

	return domain.SentimentResult{Label: labelFor(score), Score: score}
}

// AnalyzeConversation scores the user-authored turns of a conversation,
// joined by newlines. Assistant turns never count.
func AnalyzeConversation(messages []domain.Message) domain.SentimentResult {
	return Analyze(strings.Join(domain.UserContent(messages), "\n"))
}

func labelFor(score int) domain.SentimentLabel {
	switch {
	case score > 0:
		return domain.SentimentPositive
	case score < 0:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
