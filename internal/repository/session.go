package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/rs/zerolog/log"
)

// SessionRepository stores completed sessions as one JSON array. Writes are
// serialized within the process, so share one repository per store.
type SessionRepository struct {
	mu    sync.Mutex
	store domain.BlobStore
	keys  Keys
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store domain.BlobStore, keys Keys) *SessionRepository {
	return &SessionRepository{store: store, keys: keys}
}

// Append adds session to the end of the stored array. It never rejects a
// session and never deduplicates ids.
func (r *SessionRepository) Append(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}

	sessions = append(sessions, *session)

	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	if err := r.store.Set(ctx, r.keys.Sessions, data); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	return nil
}

// LoadAll returns sessions in append order. Missing or corrupt data yields an
// empty slice; backend failures are returned.
func (r *SessionRepository) LoadAll(ctx context.Context) ([]domain.Session, error) {
	data, err := r.store.Get(ctx, r.keys.Sessions)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	var sessions []domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Warn().Err(err).Str("key", r.keys.Sessions).Msg("stored sessions are unreadable, starting empty")
		return []domain.Session{}, nil
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}

	return sessions, nil
}

// LoadLast returns the most recently appended session, or nil
func (r *SessionRepository) LoadLast(ctx context.Context) (*domain.Session, error) {
	sessions, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	last := sessions[len(sessions)-1]
	return &last, nil
}

// FindByID returns the last appended session carrying id
func (r *SessionRepository) FindByID(ctx context.Context, id int64) (*domain.Session, error) {
	sessions, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].ID == id {
			found := sessions[i]
			return &found, nil
		}
	}

	return nil, domain.ErrNotFound
}

// Clear removes stored sessions and settings
func (r *SessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range []string{r.keys.Sessions, r.keys.Settings} {
		if err := r.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}
