package ollama

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

func TestComplete_ChatEndpoint(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":{"role":"assistant","content":"I hear you."},"done":true,"prompt_eval_count":4,"eval_count":3}`))
	}))
	defer server.Close()

	p := NewProvider(server.URL+"/", "mistral")
	resp, err := p.Complete(context.Background(), llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: "hello"}},
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "I hear you.", resp.Content)
	assert.Equal(t, 7, resp.TokensUsed)

	assert.Equal(t, "mistral", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.7, got.Options["temperature"])
}

func TestFactory_IgnoresAPIKey(t *testing.T) {
	p := Factory("", "llama3")(llm.Credentials{APIKey: "key"})
	assert.False(t, p.IsConfigured())

	p = Factory("http://localhost:11434", "llama3")(llm.Credentials{Model: "phi3"})
	assert.True(t, p.IsConfigured())
	assert.Equal(t, "phi3", p.DefaultModel())
}
