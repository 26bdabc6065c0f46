package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/handlers"
)

func init() { Register(registerMovies) }

// Catalog routes are public; the frontend browses before login.
func registerMovies(r chi.Router, d deps.Deps) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/search", handlers.SearchMovies(d))
		r.Get("/popular", handlers.PopularMovies(d))
		r.Get("/trending", handlers.TrendingMovies(d))
		r.Get("/top-rated", handlers.TopRatedMovies(d))
		r.Get("/upcoming", handlers.UpcomingMovies(d))
		r.Get("/genres", handlers.MovieGenres(d))
		r.Get("/genre/{genreId}", handlers.MoviesByGenre(d))
		r.Get("/images", handlers.MovieImages(d))
		r.Get("/{movieId}", handlers.MovieDetails(d))
		r.Get("/{movieId}/recommendations", handlers.MovieRecommendations(d))
	})
}
