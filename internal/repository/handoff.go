package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/rs/zerolog/log"
)

// HandoffRepository keeps the single pending questionnaire result
type HandoffRepository struct {
	store domain.BlobStore
	keys  Keys
}

// NewHandoffRepository creates a new handoff repository
func NewHandoffRepository(store domain.BlobStore, keys Keys) *HandoffRepository {
	return &HandoffRepository{store: store, keys: keys}
}

// Put replaces any pending handoff
func (r *HandoffRepository) Put(ctx context.Context, handoff *domain.Handoff) error {
	data, err := json.Marshal(handoff)
	if err != nil {
		return fmt.Errorf("failed to marshal handoff: %w", err)
	}

	if err := r.store.Set(ctx, r.keys.Presession, data); err != nil {
		return fmt.Errorf("failed to save handoff: %w", err)
	}

	return nil
}

// Pending returns the stored handoff. Any read or parse failure is treated as
// absent.
func (r *HandoffRepository) Pending(ctx context.Context) *domain.Handoff {
	data, err := r.store.Get(ctx, r.keys.Presession)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Msg("failed to read pre-session handoff")
		}
		return nil
	}

	var handoff domain.Handoff
	if err := json.Unmarshal(data, &handoff); err != nil {
		log.Warn().Err(err).Str("key", r.keys.Presession).Msg("pre-session handoff is unreadable, ignoring")
		return nil
	}

	return &handoff
}
