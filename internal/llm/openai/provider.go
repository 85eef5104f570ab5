package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rrens/mindcare/internal/llm"
	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Provider implements llm.Provider for OpenAI through the official SDK
type Provider struct {
	apiKey       string
	defaultModel string
	baseURL      string
	client       *http.Client
}

// NewProvider creates a new OpenAI provider
func NewProvider(apiKey, defaultModel, baseURL string) llm.Provider {
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &Provider{
		apiKey:       apiKey,
		defaultModel: defaultModel,
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 120 * time.Second},
	}
}

// Factory prefers the caller's credentials and falls back to the server key
func Factory(apiKey, model, baseURL string) llm.ProviderFactory {
	return func(creds llm.Credentials) llm.Provider {
		key, m := apiKey, model
		if creds.APIKey != "" {
			key = creds.APIKey
		}
		if creds.Model != "" {
			m = creds.Model
		}
		return NewProvider(key, m, baseURL)
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openai"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4.1-mini",
		"gpt-3.5-turbo",
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

// Complete sends the conversation through the OpenAI chat completions API.
// SDK retries are disabled; a single exchange per call.
func (p *Provider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, llm.ErrMissingAPIKey
	}
	if req.Model == "" {
		req.Model = p.defaultModel
	}

	client := openaigo.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(p.baseURL),
		option.WithHTTPClient(p.client),
		option.WithMaxRetries(0),
	)

	params := openaigo.ChatCompletionNewParams{
		Model:       openaigo.ChatModel(req.Model),
		Messages:    toParams(req.Messages),
		Temperature: openaigo.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaigo.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openaigo.Error
		if errors.As(err, &apiErr) {
			return nil, &llm.StatusError{
				Provider:   "openai",
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Message,
			}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}

	return &llm.Response{
		Content:    completion.Choices[0].Message.Content,
		Model:      completion.Model,
		TokensUsed: int(completion.Usage.TotalTokens),
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

func toParams(messages []llm.Message) []openaigo.ChatCompletionMessageParamUnion {
	out := make([]openaigo.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openaigo.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openaigo.AssistantMessage(m.Content))
		default:
			out = append(out, openaigo.UserMessage(m.Content))
		}
	}
	return out
}
