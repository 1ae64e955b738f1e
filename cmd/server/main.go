package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/corvitlabs/support-bot/internal/answer"
	"github.com/corvitlabs/support-bot/internal/api"
	"github.com/corvitlabs/support-bot/internal/config"
	"github.com/corvitlabs/support-bot/internal/embedding"
	"github.com/corvitlabs/support-bot/internal/events"
	"github.com/corvitlabs/support-bot/internal/history"
	"github.com/corvitlabs/support-bot/internal/index"
	"github.com/corvitlabs/support-bot/internal/lang"
	"github.com/corvitlabs/support-bot/internal/llm"
	"github.com/corvitlabs/support-bot/internal/llm/gemini"
	"github.com/corvitlabs/support-bot/internal/llm/ollama"
	"github.com/corvitlabs/support-bot/internal/qna"
	"github.com/corvitlabs/support-bot/internal/recommend"
	"github.com/corvitlabs/support-bot/internal/repository/redis"
	"github.com/corvitlabs/support-bot/internal/repository/sqlite"
	"github.com/corvitlabs/support-bot/internal/schedule"
	"github.com/corvitlabs/support-bot/internal/security"
	"github.com/corvitlabs/support-bot/internal/service"
)

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting Corvit support bot API server")

	ctx := context.Background()

	// Initialize user database
	db, err := sqlite.NewDB(ctx, cfg.Data.UsersDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user database")
	}
	defer db.Close()

	// Redis backs rate limiting and the translation cache. The bot
	// stays up without it, just uncached and unthrottled.
	var rateLimiter *redis.RateLimiter
	var translationCache lang.TranslationCache
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, disabling rate limiting and translation cache")
	} else {
		defer redisClient.Close()
		rateLimiter = redis.NewRateLimiter(
			redisClient,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
		translationCache = redis.NewTranslationCache(redisClient)
	}

	// Embedding collaborator and retrieval index
	embedder := embedding.NewClient(cfg.Embedding)
	entries, err := index.LoadCorpus(cfg.Data.CorpusPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load corpus")
	}
	idx, err := index.Build(ctx, entries, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build retrieval index")
	}
	log.Info().Int("entries", idx.Len()).Msg("Retrieval index ready")

	// Static datasets
	eventsSvc := events.NewService(events.Load(cfg.Data.EventsPath))
	scheduleSvc := schedule.NewService(schedule.Load(cfg.Data.SchedulePath))
	qnaStore := qna.Load(cfg.Data.QnAPath)

	// Language boundary
	normalizer := lang.NewNormalizer(
		lang.NewDetector(),
		lang.NewHTTPTranslator(cfg.Translation),
		translationCache,
		log.Logger,
	)

	// LLM providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		log.Info().Msg("Registering Gemini provider")
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}

	// Chat transcripts
	historyStore, err := history.NewFileStore(cfg.Data.HistoryDir, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create history store")
	}

	// Core engines
	answerEngine := answer.NewEngine(embedder, embedder, idx, llmRouter, log.Logger)
	recommendEngine := recommend.NewEngine(historyStore, embedder, idx, log.Logger)

	// Services
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	authService := service.NewAuthService(sqlite.NewUserRepository(db), jwtManager)
	chatService := service.NewChatService(
		normalizer,
		qnaStore,
		eventsSvc,
		scheduleSvc,
		recommendEngine,
		answerEngine,
		historyStore,
		log.Logger,
	)

	// Initialize router
	router := api.NewRouter(api.Deps{
		Config:      cfg,
		DB:          db,
		JWTManager:  jwtManager,
		RateLimiter: rateLimiter,
		Auth:        authService,
		Chat:        chatService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
