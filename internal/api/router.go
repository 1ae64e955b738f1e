// Package api assembles the HTTP surface of the assistant.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/corvitlabs/support-bot/internal/api/handler"
	customMiddleware "github.com/corvitlabs/support-bot/internal/api/middleware"
	"github.com/corvitlabs/support-bot/internal/config"
	"github.com/corvitlabs/support-bot/internal/repository/redis"
	"github.com/corvitlabs/support-bot/internal/repository/sqlite"
	"github.com/corvitlabs/support-bot/internal/security"
	"github.com/corvitlabs/support-bot/internal/service"
)

// Deps carries the wired services into the router. RateLimiter may be
// nil when Redis is unavailable; rate limiting is then disabled.
type Deps struct {
	Config      *config.Config
	DB          *sqlite.DB
	JWTManager  *security.JWTManager
	RateLimiter *redis.RateLimiter
	Auth        *service.AuthService
	Chat        *service.ChatService
}

// NewRouter creates and configures the HTTP router
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(d.Config.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(d.Auth)
	chatHandler := handler.NewChatHandler(d.Chat)
	sessionHandler := handler.NewSessionHandler(d.Chat)
	eventsHandler := handler.NewEventsHandler(d.Chat)

	authMiddleware := customMiddleware.NewAuthMiddleware(d.JWTManager)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(d.DB))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			if d.RateLimiter != nil {
				r.Use(customMiddleware.NewRateLimitMiddleware(d.RateLimiter).Limit)
			}

			r.Get("/me", authHandler.Me)

			r.Post("/chat", chatHandler.Chat)

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.List)
				r.Get("/{title}/messages", sessionHandler.Messages)
				r.Delete("/{title}", sessionHandler.Delete)
			})

			r.Get("/events/upcoming", eventsHandler.Upcoming)
			r.Get("/suggested-questions", handler.SuggestedQuestions(d.Chat))
		})
	})

	return r
}
