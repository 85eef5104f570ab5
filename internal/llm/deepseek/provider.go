package deepseek

import (
	"context"
	"net/http"
	"time"

	"github.com/Rrens/mindcare/internal/llm"
)

// Provider implements llm.Provider for DeepSeek
type Provider struct {
	apiKey       string
	defaultModel string
	client       *http.Client
	baseURL      string
}

// NewProvider creates a new DeepSeek provider
func NewProvider(apiKey, defaultModel string) llm.Provider {
	if defaultModel == "" {
		defaultModel = "deepseek-chat"
	}
	return &Provider{
		apiKey:       apiKey,
		defaultModel: defaultModel,
		client:       &http.Client{Timeout: 120 * time.Second},
		baseURL:      "https://api.deepseek.com/v1",
	}
}

// Factory prefers the caller's credentials and falls back to the server key
func Factory(apiKey, model string) llm.ProviderFactory {
	return func(creds llm.Credentials) llm.Provider {
		key, m := apiKey, model
		if creds.APIKey != "" {
			key = creds.APIKey
		}
		if creds.Model != "" {
			m = creds.Model
		}
		return NewProvider(key, m)
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "deepseek"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"deepseek-chat",
		"deepseek-reasoner",
	}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Complete sends the conversation to DeepSeek's OpenAI-compatible endpoint
func (p *Provider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if req.Model == "" {
		req.Model = p.defaultModel
	}

	call := llm.ChatCompletionsCall{
		Provider: "deepseek",
		Endpoint: p.baseURL + "/chat/completions",
		APIKey:   p.apiKey,
		Client:   p.client,
	}
	return call.Do(ctx, req)
}
