package domain

import (
	"context"
	"time"
)

// SentimentLabel is the coarse polarity of a conversation
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentResult is derived from the user-authored content of a conversation
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score int            `json:"score"`
}

// Session is one completed therapy conversation. It is created once, when the
// conversation ends, and never mutated afterwards.
type Session struct {
	ID         int64            `json:"id"`
	CreatedAt  time.Time        `json:"createdAt"`
	Messages   []Message        `json:"messages"`
	Analysis   SentimentResult  `json:"analysis"`
	Presession *PreSessionScore `json:"presession,omitempty"`
}

// SessionRepository defines the interface for completed session storage
type SessionRepository interface {
	Append(ctx context.Context, session *Session) error
	LoadAll(ctx context.Context) ([]Session, error)
	// LoadLast returns nil without error when no session is stored.
	LoadLast(ctx context.Context) (*Session, error)
	// FindByID returns ErrNotFound when no session carries the id.
	FindByID(ctx context.Context, id int64) (*Session, error)
	// Clear removes stored sessions and settings.
	Clear(ctx context.Context) error
}
