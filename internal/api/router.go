package api

import (
	"net/http"

	"github.com/Rrens/mindcare/internal/api/handler"
	customMiddleware "github.com/Rrens/mindcare/internal/api/middleware"
	"github.com/Rrens/mindcare/internal/config"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/llm"
	"github.com/Rrens/mindcare/internal/repository"
	"github.com/Rrens/mindcare/internal/repository/redis"
	"github.com/Rrens/mindcare/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router. redisClient may be nil,
// which disables rate limiting and the recommendation cache.
func NewRouter(cfg *config.Config, store domain.BlobStore, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize repositories
	keys := repository.NewKeys(cfg.Storage.KeyPrefix)
	settingsRepo := repository.NewSettingsRepository(store, keys, repository.SettingsDefaults{
		Model: cfg.LLM.DefaultModel,
	})
	sessionRepo := repository.NewSessionRepository(store, keys)
	handoffRepo := repository.NewHandoffRepository(store, keys)

	// Initialize LLM client
	llmRouter := NewLLMRouter(cfg.LLM)
	chat := llm.NewClient(llmRouter, cfg.LLM.DefaultProvider, cfg.LLM.Temperature)

	// Redis-backed extras
	var (
		recommendationCache service.RecommendationCache
		cacheFlusher        handler.Flusher
		limit               = func(next http.Handler) http.Handler { return next }
	)
	if redisClient != nil {
		cache := redis.NewRecommendationCache(redisClient, cfg.Cache.RecommendationTTL)
		recommendationCache = cache
		cacheFlusher = cache

		rateLimiter := redis.NewRateLimiter(
			redisClient,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
		limit = customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit
	} else {
		log.Warn().Msg("redis disabled, rate limiting and recommendation cache are off")
	}

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo)
	presessionService := service.NewPresessionService(handoffRepo)
	historyService := service.NewHistoryService(sessionRepo)
	analyticsService := service.NewAnalyticsService(sessionRepo)
	therapyService := service.NewTherapyService(
		settingsRepo,
		sessionRepo,
		handoffRepo,
		chat,
		service.ControllerOptions{
			Greeting:      cfg.Therapy.Greeting,
			SystemPrompt:  cfg.Therapy.SystemPrompt,
			FallbackReply: cfg.Therapy.FallbackReply,
			EchoUserVoice: cfg.Therapy.EchoUserVoice,
		},
	).WithIdleTimeout(cfg.Therapy.IdleTimeout)
	recommendationService := service.NewRecommendationService(
		sessionRepo,
		settingsRepo,
		chat,
		recommendationCache,
		cfg.Therapy.TranscriptMaxChars,
	).WithCacheKey(redis.CacheKey)

	// Initialize handlers
	settingsHandler := handler.NewSettingsHandler(settingsService)
	presessionHandler := handler.NewPresessionHandler(presessionService)
	therapyHandler := handler.NewTherapyHandler(therapyService)
	voiceHandler := handler.NewVoiceHandler(therapyService)
	sessionHandler := handler.NewSessionHandler(historyService)
	insightsHandler := handler.NewInsightsHandler(analyticsService, recommendationService)

	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived voice socket, exempt from the request timeout
		r.With(limit).Get("/therapy/{id}/voice", voiceHandler.Serve)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

			// Health check
			r.Get("/health", handler.HealthCheck)
			r.Get("/ready", handler.ReadyCheck(store))

			// LLM providers
			r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

			// Cache management
			r.Post("/cache/flush", handler.FlushCache(cacheFlusher))

			// Settings and stored data
			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)
			r.Delete("/data", sessionHandler.Clear)

			// Pre-session questionnaire
			r.Get("/presession", presessionHandler.Questions)
			r.Post("/presession", presessionHandler.Submit)

			// Live therapy
			r.Post("/therapy", therapyHandler.Start)
			r.Get("/therapy/{id}", therapyHandler.Get)
			r.Post("/therapy/{id}/listen", therapyHandler.StartListening)
			r.Delete("/therapy/{id}/listen", therapyHandler.StopListening)
			r.With(limit).Post("/therapy/{id}/messages", therapyHandler.SendMessage)
			r.Post("/therapy/{id}/end", therapyHandler.End)

			// Session history
			r.Get("/sessions", sessionHandler.List)
			r.Get("/sessions/last", sessionHandler.Last)
			r.Get("/sessions/{sessionID}", sessionHandler.Get)

			// Insights
			r.Get("/analytics", insightsHandler.Analytics)
			r.With(limit).Get("/recommendations", insightsHandler.Recommendations)

			// Companion chatbot
			r.Get("/chatbot", handler.ChatbotWelcome)
			r.Post("/chatbot", handler.ChatbotReply)
		})
	})

	return r
}
