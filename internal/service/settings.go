package service

import (
	"context"

	"github.com/Rrens/mindcare/internal/domain"
)

// SettingsService reads and replaces the settings singleton
type SettingsService struct {
	repo domain.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the stored settings, defaults on first read
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Load(ctx)
}

// Save overwrites the settings. An empty voice is stored as default and an
// empty apiKey keeps the stored key, since clients never read keys back.
func (s *SettingsService) Save(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if settings.Voice == "" {
		settings.Voice = domain.VoiceDefault
	}
	if settings.APIKey == "" {
		current, err := s.repo.Load(ctx)
		if err != nil {
			return domain.Settings{}, err
		}
		settings.APIKey = current.APIKey
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return domain.Settings{}, err
	}
	return s.repo.Load(ctx)
}
