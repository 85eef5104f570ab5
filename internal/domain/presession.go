package domain

import (
	"context"
	"time"
)

// Questionnaire question identifiers
const (
	QuestionMood    = "mood"
	QuestionSleep   = "sleep"
	QuestionEnergy  = "energy"
	QuestionAnxiety = "anxiety"
	QuestionGoal    = "goal"
)

// QuestionnaireAnswer maps a question id to the selected option label or free text
type QuestionnaireAnswer map[string]string

// PreSessionScore is the wellbeing estimate computed from a questionnaire.
// DepressionRisk is always 1 - AverageWellbeing.
type PreSessionScore struct {
	AverageWellbeing float64   `json:"averageWellbeing"`
	DepressionRisk   float64   `json:"depressionRisk"`
	ComputedAt       time.Time `json:"computedAt"`
}

// Handoff is the short-lived record passed from the questionnaire to the
// therapy session that follows it
type Handoff struct {
	Values    QuestionnaireAnswer `json:"values"`
	Scoring   PreSessionScore     `json:"scoring"`
	StartedAt time.Time           `json:"startedAt"`
}

// HandoffRepository stores the single pending handoff record
type HandoffRepository interface {
	Put(ctx context.Context, handoff *Handoff) error
	// Pending returns nil when nothing is stored or the stored record is unreadable.
	Pending(ctx context.Context) *Handoff
}
