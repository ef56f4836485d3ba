package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Duke242/mycontacts/internal/auth"
	"github.com/Duke242/mycontacts/internal/middleware"
)

// Router holds all handlers and creates the chi router
type Router struct {
	authHandler       *AuthHandler
	profileHandler    *ProfileHandler
	requestHandler    *RequestHandler
	connectionHandler *ConnectionHandler
	healthHandler     *HealthHandler
	eventHub          *EventHub
	jwtManager        *auth.JWTManager
	logger            *zap.Logger
}

// NewRouter creates a new router
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	requestHandler *RequestHandler,
	connectionHandler *ConnectionHandler,
	healthHandler *HealthHandler,
	eventHub *EventHub,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		requestHandler:    requestHandler,
		connectionHandler: connectionHandler,
		healthHandler:     healthHandler,
		eventHub:          eventHub,
		jwtManager:        jwtManager,
		logger:            logger,
	}
}

// Setup configures and returns the chi router
func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware())
	r.Use(chimiddleware.Compress(5))

	// Health endpoints (no auth required)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", rt.healthHandler.Health)
		r.Get("/ready", rt.healthHandler.Ready)
		r.Get("/live", rt.healthHandler.Live)
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (no auth required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.Refresh)
			r.Post("/logout", rt.authHandler.Logout)
		})

		// Public card views. Auth is optional: a viewer with a valid
		// token sees their tier, everybody else gets the stranger view.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthMiddleware(rt.jwtManager))

			r.Get("/profiles/{username}", rt.profileHandler.View)
			r.Get("/usernames/{username}/availability", rt.profileHandler.CheckAvailability)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.jwtManager))

			r.Get("/me", rt.authHandler.Me)

			r.Post("/profiles", rt.profileHandler.Claim)
			r.Get("/profiles/me", rt.profileHandler.GetOwn)
			r.Put("/profiles/me", rt.profileHandler.Update)

			r.Post("/requests", rt.requestHandler.SendRequest)
			r.Get("/requests", rt.requestHandler.ListIncoming)
			r.Post("/requests/{id}/respond", rt.requestHandler.Respond)

			r.Get("/connections", rt.connectionHandler.List)
			r.Put("/connections/{id}/level", rt.connectionHandler.SetLevel)
			r.Delete("/connections/{id}", rt.connectionHandler.Remove)

			r.Get("/ws", rt.eventHub.Serve)
		})
	})

	return r
}
