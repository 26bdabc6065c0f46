package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/handlers"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Route("/api/auth", func(r chi.Router) {
		// Credential endpoints are rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(d.AuthRateLimit, d.AuthRateWindow, d.TrustProxy))
			r.Post("/register", handlers.Register(d))
			r.Post("/login", handlers.Login(d))
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(d.Auth))
			r.Get("/me", handlers.Me(d))
			r.Post("/refresh", handlers.Refresh(d))
		})
	})
}
