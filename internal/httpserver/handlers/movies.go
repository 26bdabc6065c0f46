package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
)

func pageQuery(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

func SearchMovies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			respondError(w, d.Logger, &domain.ValidationError{Field: "query", Reason: "query parameter is required"})
			return
		}

		page, err := d.Catalog.SearchMovies(r.Context(), query, pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func PopularMovies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Catalog.Popular(r.Context(), pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func TrendingMovies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window := r.URL.Query().Get("window")
		page, err := d.Catalog.Trending(r.Context(), window, pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func TopRatedMovies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Catalog.TopRated(r.Context(), pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func UpcomingMovies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Catalog.Upcoming(r.Context(), pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func MovieGenres(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := d.Catalog.Genres(r.Context())
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, genres)
	}
}

func MoviesByGenre(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genreID, err := strconv.Atoi(chi.URLParam(r, "genreId"))
		if err != nil || genreID <= 0 {
			respondError(w, d.Logger, &domain.ValidationError{Field: "genreId", Reason: "must be a positive integer"})
			return
		}

		page, err := d.Catalog.MoviesByGenre(r.Context(), genreID, pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func MovieDetails(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		m, err := d.Catalog.MovieDetails(r.Context(), movieID)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, m)
	}
}

func MovieRecommendations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		page, err := d.Catalog.Recommendations(r.Context(), movieID, pageQuery(r))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

// MovieImages resolves a poster path against the TMDB image CDN.
func MovieImages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			respondError(w, d.Logger, &domain.ValidationError{Field: "path", Reason: "path parameter is required"})
			return
		}
		if size := r.URL.Query().Get("size"); size != "" {
			respondData(w, http.StatusOK, map[string]string{size: d.Catalog.ImageURL(path, size)})
			return
		}
		respondData(w, http.StatusOK, d.Catalog.ImageURLs(path))
	}
}
