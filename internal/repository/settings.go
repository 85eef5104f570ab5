package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/rs/zerolog/log"
)

// SettingsDefaults fills the settings singleton when nothing usable is stored.
// There is no default API key: server-side keys stay with the chat providers.
type SettingsDefaults struct {
	Model string
	Voice domain.Voice
}

// SettingsRepository stores the settings singleton
type SettingsRepository struct {
	store    domain.BlobStore
	keys     Keys
	defaults SettingsDefaults
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(store domain.BlobStore, keys Keys, defaults SettingsDefaults) *SettingsRepository {
	if defaults.Voice == "" {
		defaults.Voice = domain.VoiceDefault
	}
	return &SettingsRepository{store: store, keys: keys, defaults: defaults}
}

// Load returns stored settings merged over the defaults
func (r *SettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	settings := domain.Settings{
		Model: r.defaults.Model,
		Voice: r.defaults.Voice,
	}

	data, err := r.store.Get(ctx, r.keys.Settings)
	if errors.Is(err, domain.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}

	var stored domain.Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn().Err(err).Str("key", r.keys.Settings).Msg("stored settings are unreadable, using defaults")
		return settings, nil
	}

	settings.APIKey = stored.APIKey
	if stored.Model != "" {
		settings.Model = stored.Model
	}
	if stored.Voice != "" {
		settings.Voice = stored.Voice
	}

	return settings, nil
}

// Save overwrites the stored settings wholesale
func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := r.store.Set(ctx, r.keys.Settings, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
