package handlers

import (
	"net/http"
	"strconv"

	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

func ActivityFeed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := d.FeedLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		items, err := d.Feed.BuildActivityFeed(r.Context(), mw.UserID(r.Context()), limit)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, items)
	}
}

func Statistics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := d.Feed.ComputeStatistics(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, stats)
	}
}
