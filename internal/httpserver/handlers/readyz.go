package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
}

// Readyz reports readiness: when backed by Redis, a failed ping makes
// the instance not ready so load balancers stop routing to it.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if d.RedisClient == nil {
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(readyzResponse{Ready: true, Store: "memory"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.RedisClient.Ping(ctx).Err(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false, Store: "redis"})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: true, Store: "redis"})
	}
}
