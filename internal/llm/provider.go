package llm

import "context"

// Message is one entry of the outbound chat transcript
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request contains chat completion parameters. Messages normally start with
// a system instruction.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Response contains LLM generation result
type Response struct {
	Content    string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Credentials are the per-call endpoint credentials taken from the user's settings
type Credentials struct {
	APIKey string
	Model  string
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete performs one chat completion exchange
	Complete(ctx context.Context, req Request) (*Response, error)
}

// ProviderFactory creates a provider instance bound to the given credentials
type ProviderFactory func(creds Credentials) Provider
