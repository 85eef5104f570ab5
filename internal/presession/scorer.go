// Package presession turns the pre-session questionnaire into a wellbeing and
// depression-risk estimate.
package presession

import (
	"time"

	"github.com/Rrens/mindcare/internal/domain"
)

// NeutralWellbeing is used when no scored question was answered
const NeutralWellbeing = 0.5

const maxPoints = 4

// Question describes one questionnaire item
type Question struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

// Questions lists the questionnaire in display order. Options run from the
// worst answer (0 points) to the best (4 points).
var Questions = []Question{
	{ID: domain.QuestionMood, Label: "How have you felt most of the time this week?", Options: []string{"Very negative", "Negative", "Neutral", "Positive", "Very positive"}},
	{ID: domain.QuestionSleep, Label: "How has your sleep been?", Options: []string{"Very poor", "Poor", "Okay", "Good", "Very good"}},
	{ID: domain.QuestionEnergy, Label: "Your energy levels today?", Options: []string{"Very low", "Low", "Average", "High", "Very high"}},
	{ID: domain.QuestionAnxiety, Label: "Anxiety level right now", Options: []string{"Severe", "High", "Moderate", "Low", "None"}},
	{ID: domain.QuestionGoal, Label: "What would you like to focus on today?"},
}

var scoredQuestions = []string{
	domain.QuestionMood,
	domain.QuestionSleep,
	domain.QuestionEnergy,
	domain.QuestionAnxiety,
}

var pointTables = buildPointTables()

func buildPointTables() map[string]map[string]int {
	tables := make(map[string]map[string]int)
	for _, q := range Questions {
		if len(q.Options) == 0 {
			continue
		}
		table := make(map[string]int, len(q.Options))
		for i, opt := range q.Options {
			table[opt] = i
		}
		tables[q.ID] = table
	}
	return tables
}

// Points returns the ordinal value of an option for a scored question
func Points(questionID, option string) (int, bool) {
	table, ok := pointTables[questionID]
	if !ok {
		return 0, false
	}
	p, ok := table[option]
	return p, ok
}

// Score computes the pre-session score. Only answered scored dimensions enter
// the average; an answer that is not one of the question's options counts as
// answered with 0 points.
func Score(answers domain.QuestionnaireAnswer, now time.Time) domain.PreSessionScore {
	total := 0
	count := 0
	for _, id := range scoredQuestions {
		option, answered := answers[id]
		if !answered {
			continue
		}
		p, _ := Points(id, option)
		total += p
		count++
	}

	avg := NeutralWellbeing
	if count > 0 {
		avg = float64(total) / float64(maxPoints*count)
	}

	return domain.PreSessionScore{
		AverageWellbeing: avg,
		DepressionRisk:   1 - avg,
		ComputedAt:       now,
	}
}
