package handlers

import (
	"net/http"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

func GetProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.Store.GetUser(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, u.Profile)
	}
}

func UpdateProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.Profile
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, err := d.Store.UpdateUser(r.Context(), mw.UserID(r.Context()), func(mu *domain.User) error {
			mu.Profile = req
			return nil
		})
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, u.Profile)
	}
}

func GetPreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.Store.GetUser(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, u.Preferences)
	}
}

func UpdatePreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.Preferences
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, err := d.Store.UpdateUser(r.Context(), mw.UserID(r.Context()), func(mu *domain.User) error {
			mu.Preferences = req
			return nil
		})
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, u.Preferences)
	}
}
