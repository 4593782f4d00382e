// Package router sets up all HTTP routes and middleware chains for the
// talkpress comments API. It organizes routes into public reads and
// credential-gated writes with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"talkpress/internal/handlers"
	"talkpress/internal/middleware"
	"talkpress/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. writeLimiter may be nil to disable rate
// limiting (tests do this).
func New(tokens *token.Store, auth *handlers.Auth, comments *handlers.Comments, reactions *handlers.Reactions, writeLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadPrincipal(tokens))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Authentication.
		r.Post("/auth/login", auth.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/logout", auth.Logout)
		})

		// Public reads.
		r.Get("/articles/{slug}/comments", comments.List)
		r.Get("/articles/{slug}/reactions", reactions.Get)

		// Gated writes — bearer credential plus rate limiting.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			if writeLimiter != nil {
				r.Use(writeLimiter.Middleware)
			}

			r.Post("/articles/{slug}/comments", comments.Create)
			r.Put("/comments/{id}", comments.Update)
			r.Delete("/comments/{id}", comments.Delete)
			r.Post("/articles/{slug}/reactions/{kind}/toggle", reactions.Toggle)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
