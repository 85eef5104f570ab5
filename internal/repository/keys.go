// Package repository persists settings, completed sessions and the
// pre-session handoff as JSON blobs in a pluggable key-value backend.
package repository

// Keys are stored under a configurable prefix
const (
	sessionsKey   = "sessions"
	settingsKey   = "settings"
	presessionKey = "presession"
)

// Keys names the blob keys for one prefix
type Keys struct {
	Sessions   string
	Settings   string
	Presession string
}

// NewKeys builds the key set for prefix
func NewKeys(prefix string) Keys {
	return Keys{
		Sessions:   prefix + sessionsKey,
		Settings:   prefix + settingsKey,
		Presession: prefix + presessionKey,
	}
}
