package api

import (
	"github.com/Rrens/mindcare/internal/config"
	"github.com/Rrens/mindcare/internal/llm"
	"github.com/Rrens/mindcare/internal/llm/anthropic"
	"github.com/Rrens/mindcare/internal/llm/deepseek"
	"github.com/Rrens/mindcare/internal/llm/gemini"
	"github.com/Rrens/mindcare/internal/llm/ollama"
	"github.com/Rrens/mindcare/internal/llm/openai"
	"github.com/Rrens/mindcare/internal/llm/openrouter"
	"github.com/rs/zerolog/log"
)

// NewLLMRouter registers a factory for every supported chat provider. Each
// call binds the user's stored credentials; server-side keys fill in when the
// user has none.
func NewLLMRouter(cfg config.LLMConfig) *llm.Router {
	router := llm.NewRouter(cfg.DefaultProvider)

	router.RegisterFactory("openrouter", openrouter.Factory(openrouter.Options{
		APIKey:   cfg.DefaultAPIKey,
		Model:    cfg.DefaultModel,
		BaseURL:  cfg.OpenRouter.BaseURL,
		SiteURL:  cfg.OpenRouter.SiteURL,
		SiteName: cfg.OpenRouter.SiteName,
	}))
	router.RegisterFactory("openai", openai.Factory(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL))
	router.RegisterFactory("anthropic", anthropic.Factory(cfg.Anthropic.APIKey, cfg.Anthropic.Model))
	router.RegisterFactory("deepseek", deepseek.Factory(cfg.DeepSeek.APIKey, cfg.DeepSeek.Model))
	router.RegisterFactory("gemini", gemini.Factory(cfg.Gemini))
	router.RegisterFactory("ollama", ollama.Factory(cfg.Ollama.Host, cfg.Ollama.DefaultModel))

	log.Info().
		Str("default", cfg.DefaultProvider).
		Strs("configured", router.ListProviders()).
		Msg("LLM providers registered")

	return router
}
