package handlers

import (
	"net/http"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

type markWatchedRequest struct {
	MovieID     int    `json:"movieId"`
	MovieTitle  string `json:"movieTitle"`
	MoviePoster string `json:"moviePoster"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
}

func ListWatched(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.Store.GetUser(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		watched := make([]domain.WatchLogEntry, 0, len(u.WatchLog))
		for _, e := range u.WatchLog {
			if e.Status == domain.StatusWatched {
				watched = append(watched, e)
			}
		}
		respondData(w, http.StatusOK, watched)
	}
}

func MarkWatched(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markWatchedRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if req.MovieID <= 0 {
			respondError(w, d.Logger, &domain.ValidationError{Field: "movieId", Reason: "must be a positive integer"})
			return
		}

		entry, err := d.Ledger.UpsertWatchLog(r.Context(), mw.UserID(r.Context()),
			req.MovieID, req.MovieTitle, req.MoviePoster, req.Rating, req.Review)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusCreated, entry)
	}
}

func RemoveWatched(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		if err := d.Ledger.RemoveWatchLog(r.Context(), mw.UserID(r.Context()), movieID, domain.StatusWatched); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "watch log entry removed")
	}
}

func CheckWatched(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		watched, err := d.Ledger.IsWatched(r.Context(), mw.UserID(r.Context()), movieID)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, map[string]bool{"isWatched": watched})
	}
}
