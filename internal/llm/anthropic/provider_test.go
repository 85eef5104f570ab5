package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/mindcare/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_LiftsSystemMessages(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content":[{"text":"Hello "},{"text":"there"}],"usage":{"input_tokens":3,"output_tokens":2}}`))
	}))
	defer server.Close()

	p := NewProvider("key", "").(*Provider)
	p.baseURL = server.URL

	resp, err := p.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: "be kind"},
			{Role: "user", Content: "hi"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", resp.Content)
	assert.Equal(t, 5, resp.TokensUsed)

	assert.Equal(t, "be kind", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, 1024, got.MaxTokens)
}

func TestComplete_NotConfigured(t *testing.T) {
	_, err := NewProvider("", "").Complete(context.Background(), llm.Request{})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}
