package llm

import (
	"context"
	"fmt"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/rs/zerolog/log"
)

// DefaultTemperature matches the sampling temperature of the chat contract
const DefaultTemperature = 0.7

// Client performs chat completions on behalf of the pipeline, binding the
// routed provider to the user's settings for each call
type Client struct {
	router      *Router
	provider    string
	temperature float64
}

// NewClient creates a chat client routing to the named provider
// (the router default when empty)
func NewClient(router *Router, provider string, temperature float64) *Client {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &Client{router: router, provider: provider, temperature: temperature}
}

// Complete sends systemPrompt followed by the conversation and returns the
// assistant's reply text. Missing credentials fail before any network call.
func (c *Client) Complete(ctx context.Context, settings domain.Settings, systemPrompt string, messages []domain.Message) (string, error) {
	provider, err := c.router.GetProviderWithConfig(c.provider, Credentials{
		APIKey: settings.APIKey,
		Model:  settings.Model,
	})
	if err != nil {
		return "", err
	}
	if !provider.IsConfigured() {
		return "", fmt.Errorf("%s: %w", provider.Name(), ErrMissingAPIKey)
	}

	resp, err := provider.Complete(ctx, Request{
		Model:       provider.DefaultModel(),
		Messages:    BuildMessages(systemPrompt, messages),
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("provider", provider.Name()).
		Str("model", resp.Model).
		Int("tokens_used", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("chat completion received")

	return CleanReply(resp.Content), nil
}

// BuildMessages prepends the system instruction to the conversation
func BuildMessages(systemPrompt string, messages []domain.Message) []Message {
	out := make([]Message, 0, len(messages)+1)
	if systemPrompt != "" {
		out = append(out, Message{Role: string(domain.RoleSystem), Content: systemPrompt})
	}
	for _, m := range messages {
		out = append(out, Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
