package handlers

import (
	"net/http"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func summarize(u *domain.User) userSummary {
	return userSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, token, err := d.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusCreated, authResponse{Token: token, User: summarize(u)})
	}
}

func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, token, err := d.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, authResponse{Token: token, User: summarize(u)})
	}
}

// Me returns the authenticated user minus credentials and push internals.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.Store.GetUser(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, map[string]any{
			"id":          u.ID,
			"username":    u.Username,
			"email":       u.Email,
			"profile":     u.Profile,
			"preferences": u.Preferences,
			"createdAt":   u.CreatedAt,
			"lastLogin":   u.LastLogin,
		})
	}
}

// Refresh mints a fresh token for a still-valid session.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.Store.GetUser(r.Context(), mw.UserID(r.Context()))
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		token, err := d.Auth.Token(u)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondData(w, http.StatusOK, authResponse{Token: token, User: summarize(u)})
	}
}
