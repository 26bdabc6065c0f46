package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

type addBookmarkRequest struct {
	MovieID     int    `json:"movieId"`
	MovieTitle  string `json:"movieTitle"`
	MoviePoster string `json:"moviePoster"`
}

// movieIDParam parses the {movieId} URL parameter.
func movieIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "movieId", Reason: "must be a positive integer"}
	}
	return id, nil
}

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.Store.GetUser(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		bookmarks := u.Bookmarks
		if bookmarks == nil {
			bookmarks = []domain.Bookmark{}
		}
		respondData(w, http.StatusOK, bookmarks)
	}
}

func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBookmarkRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if req.MovieID <= 0 {
			respondError(w, d.Logger, &domain.ValidationError{Field: "movieId", Reason: "must be a positive integer"})
			return
		}

		b, err := d.Ledger.AddBookmark(r.Context(), mw.UserID(r.Context()), req.MovieID, req.MovieTitle, req.MoviePoster)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusCreated, b)
	}
}

func RemoveBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		if err := d.Ledger.RemoveBookmark(r.Context(), mw.UserID(r.Context()), movieID); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "bookmark removed")
	}
}

func CheckBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		bookmarked, err := d.Ledger.IsBookmarked(r.Context(), mw.UserID(r.Context()), movieID)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, map[string]bool{"isBookmarked": bookmarked})
	}
}
