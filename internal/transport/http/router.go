package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hobbs-it/helpdesk-bot/internal/config"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/dynamo"
	jwtinfra "github.com/hobbs-it/helpdesk-bot/internal/infrastructure/jwt"
	s3infra "github.com/hobbs-it/helpdesk-bot/internal/infrastructure/s3"
	"github.com/hobbs-it/helpdesk-bot/internal/transport/http/handler"
	appmiddleware "github.com/hobbs-it/helpdesk-bot/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the ops router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	MessageLog  *dynamo.MessageLogRepo
	Images      *s3infra.Store
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds the operator-facing API: health check plus read access
// to the verified-user registry and the per-chat message log.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to public endpoints.
	publicRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(deps.UserRepo)
	messageH := handler.NewMessageHandler(deps.MessageLog)
	imageH := handler.NewImageHandler(deps.Images)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(publicRL.Limit).Get("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/verified-users", userH.List)
			r.Delete("/verified-users/{chatID}", userH.Delete)
			r.Get("/messages/{chatID}", messageH.ListByChat)
			r.Get("/images/{chatID}/{imageID}", imageH.Get)
			r.Delete("/images/{chatID}/{imageID}", imageH.Delete)
		})
	})

	return r
}
