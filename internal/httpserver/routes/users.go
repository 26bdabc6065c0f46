package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/handlers"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

func init() { Register(registerUsers) }

func registerUsers(r chi.Router, d deps.Deps) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(mw.RequireAuth(d.Auth))

		r.Get("/profile", handlers.GetProfile(d))
		r.Put("/profile", handlers.UpdateProfile(d))
		r.Get("/preferences", handlers.GetPreferences(d))
		r.Put("/preferences", handlers.UpdatePreferences(d))

		r.Get("/bookmarks", handlers.ListBookmarks(d))
		r.Post("/bookmarks", handlers.AddBookmark(d))
		r.Delete("/bookmarks/{movieId}", handlers.RemoveBookmark(d))
		r.Get("/bookmarks/check/{movieId}", handlers.CheckBookmark(d))

		r.Get("/watched", handlers.ListWatched(d))
		r.Post("/watched", handlers.MarkWatched(d))
		r.Delete("/watched/{movieId}", handlers.RemoveWatched(d))
		r.Get("/watched/check/{movieId}", handlers.CheckWatched(d))

		r.Get("/activity", handlers.ActivityFeed(d))
		r.Get("/stats", handlers.Statistics(d))
	})
}
