// Package handlers holds one constructor per HTTP endpoint. Every
// response body follows the same envelope: {"success":true,"data":...}
// on the happy path, {"success":false,"message":...} otherwise.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Etherlyvan/movie-mate/internal/auth"
	"github.com/Etherlyvan/movie-mate/internal/catalog"
	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

func respondError(w http.ResponseWriter, log logger.Logger, err error) {
	status, msg := mapError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", logger.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// mapError translates the domain error taxonomy to HTTP status codes.
func mapError(err error) (int, string) {
	var verr *domain.ValidationError
	var apiErr *catalog.APIError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, domain.ErrDuplicateEntry):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.As(err, &apiErr):
		// Upstream catalog rejections pass through with their status
		return apiErr.StatusCode, apiErr.Message
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func decodeBody(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "malformed JSON request body"}
	}
	return nil
}
