package openrouter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Rrens/mindcare/internal/llm"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "deepseek/deepseek-chat-v3.1:free"
)

// Options configures the OpenRouter provider
type Options struct {
	APIKey   string
	Model    string
	BaseURL  string
	SiteURL  string
	SiteName string
	Client   *http.Client
}

// Provider implements llm.Provider for OpenRouter
type Provider struct {
	apiKey       string
	defaultModel string
	baseURL      string
	siteURL      string
	siteName     string
	client       *http.Client
}

// NewProvider creates a new OpenRouter provider
func NewProvider(opts Options) llm.Provider {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 120 * time.Second}
	}
	return &Provider{
		apiKey:       opts.APIKey,
		defaultModel: opts.Model,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		siteURL:      opts.SiteURL,
		siteName:     opts.SiteName,
		client:       opts.Client,
	}
}

// Factory returns a factory binding base options to per-call credentials.
// The base key is used when the caller has none.
func Factory(base Options) llm.ProviderFactory {
	return func(creds llm.Credentials) llm.Provider {
		opts := base
		if creds.APIKey != "" {
			opts.APIKey = creds.APIKey
		}
		if creds.Model != "" {
			opts.Model = creds.Model
		}
		return NewProvider(opts)
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openrouter"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"deepseek/deepseek-chat-v3.1:free",
		"openrouter/auto",
		"openai/gpt-4o-mini",
		"anthropic/claude-3.5-haiku",
		"meta-llama/llama-3.1-8b-instruct:free",
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

// Complete sends the conversation to OpenRouter's chat completions endpoint
func (p *Provider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if req.Model == "" {
		req.Model = p.defaultModel
	}

	call := llm.ChatCompletionsCall{
		Provider: "openrouter",
		Endpoint: p.baseURL + "/chat/completions",
		APIKey:   p.apiKey,
		Headers: map[string]string{
			"HTTP-Referer": p.siteURL,
			"X-Title":      p.siteName,
		},
		Client: p.client,
	}
	return call.Do(ctx, req)
}
