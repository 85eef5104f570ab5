package domain

import "context"

// Voice is the preferred speech output voice
type Voice string

const (
	VoiceDefault Voice = "default"
	VoiceMale    Voice = "male"
	VoiceFemale  Voice = "female"
)

// Settings holds the user's chat credentials and voice preference
type Settings struct {
	APIKey string `json:"apiKey"`
	Model  string `json:"model" validate:"required,max=200"`
	Voice  Voice  `json:"voice" validate:"omitempty,oneof=default male female"`
}

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}
