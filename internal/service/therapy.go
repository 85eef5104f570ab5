package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/sentiment"
	"github.com/rs/zerolog/log"
)

// State is a therapy controller state
type State int

const (
	StateIdle State = iota
	StateListening
	StateAwaitingReply
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateAwaitingReply:
		return "awaiting_reply"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ChatCompleter produces the assistant reply for a conversation
type ChatCompleter interface {
	Complete(ctx context.Context, settings domain.Settings, systemPrompt string, messages []domain.Message) (string, error)
}

// SpeechSink speaks text. Calls are fire-and-forget.
type SpeechSink interface {
	Speak(text string, voice domain.Voice)
}

// SessionAppender persists a completed session
type SessionAppender interface {
	Append(ctx context.Context, session *domain.Session) error
}

// HandoffReader returns the pending questionnaire result, nil when absent
type HandoffReader interface {
	Pending(ctx context.Context) *domain.Handoff
}

// TranscriptChunk is one piece of recognized speech. Interim chunks may be
// revised; final chunks are settled.
type TranscriptChunk struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// TranscriptSource emits recognized speech until the channel is closed
type TranscriptSource interface {
	Chunks() <-chan TranscriptChunk
}

type nopSink struct{}

func (nopSink) Speak(string, domain.Voice) {}

// ControllerOptions tunes a therapy controller
type ControllerOptions struct {
	Greeting      string
	SystemPrompt  string
	FallbackReply string
	EchoUserVoice bool
}

// Reply is the outcome of one user turn
type Reply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Snapshot is a point-in-time copy of a controller
type Snapshot struct {
	State    State            `json:"state"`
	Messages []domain.Message `json:"messages"`
	Interim  string           `json:"interim"`
}

// Controller drives one live therapy conversation through
// Idle, Listening, AwaitingReply and Ended.
//
// Only one reply is in flight at a time. If End wins the race against an
// in-flight reply, the reply is dropped: it is neither appended nor spoken,
// and the stored session holds only the turns completed before End.
type Controller struct {
	mu         sync.Mutex
	state      State
	resume     State
	messages   []domain.Message
	interim    string
	lastActive time.Time

	settings domain.Settings
	opts     ControllerOptions
	chat     ChatCompleter
	sink     SpeechSink
	sessions SessionAppender
	handoffs HandoffReader
	ids      *IDGenerator
	now      func() time.Time
}

// NewController creates an idle controller whose history starts with the
// greeting
func NewController(
	settings domain.Settings,
	opts ControllerOptions,
	chat ChatCompleter,
	sessions SessionAppender,
	handoffs HandoffReader,
	ids *IDGenerator,
) *Controller {
	if ids == nil {
		ids = &IDGenerator{}
	}

	c := &Controller{
		state:    StateIdle,
		settings: settings,
		opts:     opts,
		chat:     chat,
		sink:     nopSink{},
		sessions: sessions,
		handoffs: handoffs,
		ids:      ids,
		now:      time.Now,
	}

	if opts.Greeting != "" {
		c.messages = append(c.messages, domain.Message{Role: domain.RoleAssistant, Content: opts.Greeting})
	}
	c.lastActive = c.now()

	return c
}

// LastActive returns when the controller last received input
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// discard ends the controller without saving a session
func (c *Controller) discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateEnded
	c.interim = ""
}

// SetSink replaces the speech sink; nil disables speech
func (c *Controller) SetSink(sink SpeechSink) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sink == nil {
		sink = nopSink{}
	}
	c.sink = sink
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot copies the controller's observable state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:    c.state,
		Messages: append([]domain.Message(nil), c.messages...),
		Interim:  c.interim,
	}
}

// StartListening moves Idle to Listening. It is a no-op when already listening.
func (c *Controller) StartListening() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()

	switch c.state {
	case StateIdle:
		c.state = StateListening
		return nil
	case StateListening:
		return nil
	case StateAwaitingReply:
		return ErrReplyPending
	default:
		return ErrSessionEnded
	}
}

// StopListening moves Listening to Idle and drops any interim text
func (c *Controller) StopListening() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()

	switch c.state {
	case StateListening:
		c.state = StateIdle
		c.interim = ""
		return nil
	case StateIdle:
		return nil
	case StateAwaitingReply:
		return ErrReplyPending
	default:
		return ErrSessionEnded
	}
}

// HandleTranscript records interim chunks and sends final chunks as user
// input. Chunks are only accepted while listening.
func (c *Controller) HandleTranscript(ctx context.Context, chunk TranscriptChunk) (*Reply, error) {
	c.mu.Lock()
	c.lastActive = c.now()
	state := c.state
	if state == StateListening {
		if chunk.Final {
			c.interim = ""
		} else {
			c.interim = chunk.Text
		}
	}
	c.mu.Unlock()

	switch state {
	case StateListening:
	case StateEnded:
		return nil, ErrSessionEnded
	case StateAwaitingReply:
		return nil, ErrReplyPending
	default:
		return nil, ErrInvalidTransition
	}

	if !chunk.Final {
		return nil, nil
	}
	return c.Send(ctx, chunk.Text)
}

// Listen feeds chunks from source until it closes, ctx is done or the
// session ends. Rejected chunks are logged and skipped.
func (c *Controller) Listen(ctx context.Context, source TranscriptSource) error {
	chunks := source.Chunks()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return nil
			}
			if _, err := c.HandleTranscript(ctx, chunk); err != nil {
				if errors.Is(err, ErrSessionEnded) {
					return nil
				}
				log.Debug().Err(err).Bool("final", chunk.Final).Msg("transcript chunk rejected")
			}
		}
	}
}

// Send appends text as a user turn and waits for the assistant reply. A chat
// failure is replaced by the fallback reply rather than returned.
func (c *Controller) Send(ctx context.Context, text string) (*Reply, error) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	c.lastActive = c.now()
	switch c.state {
	case StateEnded:
		c.mu.Unlock()
		return nil, ErrSessionEnded
	case StateAwaitingReply:
		c.mu.Unlock()
		return nil, ErrReplyPending
	}
	if text == "" {
		c.mu.Unlock()
		return nil, ErrEmptyInput
	}

	c.resume = c.state
	c.state = StateAwaitingReply
	c.messages = append(c.messages, domain.Message{Role: domain.RoleUser, Content: text})
	history := append([]domain.Message(nil), c.messages...)
	sink := c.sink
	c.mu.Unlock()

	voice := c.settings.Voice
	if c.opts.EchoUserVoice {
		sink.Speak(text, voice)
	}

	reply := &Reply{}
	content, err := c.chat.Complete(ctx, c.settings, c.opts.SystemPrompt, history)
	if err != nil || strings.TrimSpace(content) == "" {
		log.Warn().Err(err).Msg("chat completion failed, using fallback reply")
		content = c.opts.FallbackReply
		reply.Fallback = true
	}
	reply.Text = content

	c.mu.Lock()
	if c.state == StateEnded {
		c.mu.Unlock()
		log.Warn().Int("reply_chars", len(content)).Msg("dropping reply that arrived after the session ended")
		return nil, ErrSessionEnded
	}
	c.messages = append(c.messages, domain.Message{Role: domain.RoleAssistant, Content: content})
	c.state = c.resume
	c.lastActive = c.now()
	sink = c.sink
	c.mu.Unlock()

	sink.Speak(content, voice)
	return reply, nil
}

// End finalizes the conversation: it scores the user turns, attaches any
// pending questionnaire result and appends the session. The controller stays
// Ended even when persisting fails; the assembled session is returned with
// the error.
func (c *Controller) End(ctx context.Context) (*domain.Session, error) {
	c.mu.Lock()
	if c.state == StateEnded {
		c.mu.Unlock()
		return nil, ErrSessionEnded
	}
	c.state = StateEnded
	c.interim = ""
	messages := append([]domain.Message(nil), c.messages...)
	c.mu.Unlock()

	now := c.now()
	session := &domain.Session{
		ID:        c.ids.Next(now),
		CreatedAt: now,
		Messages:  messages,
		Analysis:  sentiment.AnalyzeConversation(messages),
	}

	if c.handoffs != nil {
		if handoff := c.handoffs.Pending(ctx); handoff != nil {
			score := handoff.Scoring
			session.Presession = &score
		}
	}

	if err := c.sessions.Append(ctx, session); err != nil {
		return session, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info().
		Int64("session_id", session.ID).
		Int("messages", len(messages)).
		Str("sentiment", string(session.Analysis.Label)).
		Bool("presession", session.Presession != nil).
		Msg("therapy session saved")

	return session, nil
}
