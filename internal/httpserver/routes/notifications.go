package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/handlers"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

func init() { Register(registerNotifications) }

func registerNotifications(r chi.Router, d deps.Deps) {
	r.Route("/api/notifications", func(r chi.Router) {
		// The VAPID key is needed before a session exists
		r.Get("/vapid-public-key", handlers.VAPIDPublicKey(d))

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(d.Auth))
			r.Post("/subscribe", handlers.Subscribe(d))
			r.Post("/unsubscribe", handlers.Unsubscribe(d))
			r.Post("/test", handlers.TestNotification(d))
			r.Post("/bookmark", handlers.BookmarkNotification(d))
			r.Post("/watched", handlers.WatchedNotification(d))
			r.Post("/bulk", handlers.BulkNotification(d))
		})
	})
}
