package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultIdleTimeout is how long an untouched conversation stays live
const DefaultIdleTimeout = 30 * time.Minute

// TherapyService keeps the live controllers, one per open conversation.
// Each Start discards conversations left idle longer than the idle timeout
// without saving them. A controller waiting on a reply is never discarded.
type TherapyService struct {
	mu          sync.RWMutex
	controllers map[string]*Controller

	settings    domain.SettingsRepository
	sessions    SessionAppender
	handoffs    HandoffReader
	chat        ChatCompleter
	opts        ControllerOptions
	ids         *IDGenerator
	idleTimeout time.Duration
	now         func() time.Time
}

// NewTherapyService creates a new therapy service
func NewTherapyService(
	settings domain.SettingsRepository,
	sessions SessionAppender,
	handoffs HandoffReader,
	chat ChatCompleter,
	opts ControllerOptions,
) *TherapyService {
	return &TherapyService{
		controllers: make(map[string]*Controller),
		settings:    settings,
		sessions:    sessions,
		handoffs:    handoffs,
		chat:        chat,
		opts:        opts,
		ids:         &IDGenerator{},
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}
}

// WithIdleTimeout overrides how long idle conversations are kept
func (s *TherapyService) WithIdleTimeout(d time.Duration) *TherapyService {
	if d > 0 {
		s.idleTimeout = d
	}
	return s
}

// Start opens a conversation bound to the current settings
func (s *TherapyService) Start(ctx context.Context) (string, *Controller, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load settings: %w", err)
	}

	controller := NewController(settings, s.opts, s.chat, s.sessions, s.handoffs, s.ids)
	controller.now = s.now
	controller.lastActive = s.now()
	id := uuid.New().String()

	s.mu.Lock()
	s.evictIdleLocked(s.now())
	s.controllers[id] = controller
	s.mu.Unlock()

	log.Info().Str("therapy_id", id).Str("model", settings.Model).Msg("therapy session started")
	return id, controller, nil
}

// Get returns a live controller
func (s *TherapyService) Get(id string) (*Controller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	controller, ok := s.controllers[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return controller, nil
}

// End finalizes and forgets a controller
func (s *TherapyService) End(ctx context.Context, id string) (*domain.Session, error) {
	controller, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.controllers, id)
	s.mu.Unlock()

	return controller.End(ctx)
}

// evictIdleLocked discards conversations idle longer than the idle timeout.
// Callers hold s.mu.
func (s *TherapyService) evictIdleLocked(now time.Time) {
	for id, controller := range s.controllers {
		if controller.State() == StateAwaitingReply {
			continue
		}
		if now.Sub(controller.LastActive()) < s.idleTimeout {
			continue
		}
		delete(s.controllers, id)
		controller.discard()
		log.Info().Str("therapy_id", id).Msg("idle therapy session discarded")
	}
}

// Active returns the number of live controllers
func (s *TherapyService) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.controllers)
}
