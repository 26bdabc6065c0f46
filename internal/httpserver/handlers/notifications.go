package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/mw"
	"github.com/Etherlyvan/movie-mate/internal/notify"
)

// VAPIDPublicKey hands the browser the key it needs to subscribe.
func VAPIDPublicKey(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondData(w, http.StatusOK, map[string]string{"publicKey": d.VAPIDPublicKey})
	}
}

// Subscribe stores the browser's push subscription verbatim. Its exact
// shape belongs to the push transport, not to this handler.
func Subscribe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		if err := decodeBody(r, &raw); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var probe struct {
			Endpoint string `json:"endpoint"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil || probe.Endpoint == "" {
			respondError(w, d.Logger, &domain.ValidationError{Field: "endpoint", Reason: "subscription must contain an endpoint"})
			return
		}

		_, err := d.Store.UpdateUser(r.Context(), mw.UserID(r.Context()), func(u *domain.User) error {
			u.PushSubscription = raw
			u.Preferences.Notifications.Push = true
			return nil
		})
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusCreated, "subscribed to push notifications")
	}
}

func Unsubscribe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := d.Store.UpdateUser(r.Context(), mw.UserID(r.Context()), func(u *domain.User) error {
			u.PushSubscription = nil
			u.Preferences.Notifications.Push = false
			return nil
		})
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "unsubscribed from push notifications")
	}
}

// TestNotification sends a ping back to the caller so they can verify
// their subscription end to end.
func TestNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := d.Dispatcher.SendToUser(r.Context(), mw.UserID(r.Context()), notify.BuildPayload(notify.TestPing{}))
		respondOutcome(w, d, outcome)
	}
}

type bookmarkNotifyRequest struct {
	MovieID    int    `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
}

func BookmarkNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookmarkNotifyRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		evt := notify.BookmarkAdded{MovieID: req.MovieID, MovieTitle: req.MovieTitle}
		outcome := d.Dispatcher.SendToUser(r.Context(), mw.UserID(r.Context()), notify.BuildPayload(evt))
		respondOutcome(w, d, outcome)
	}
}

type watchedNotifyRequest struct {
	MovieID    int    `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	Rating     int    `json:"rating"`
}

func WatchedNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req watchedNotifyRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		evt := notify.MovieWatched{MovieID: req.MovieID, MovieTitle: req.MovieTitle, Rating: req.Rating}
		outcome := d.Dispatcher.SendToUser(r.Context(), mw.UserID(r.Context()), notify.BuildPayload(evt))
		respondOutcome(w, d, outcome)
	}
}

type bulkNotifyRequest struct {
	UserIDs []string `json:"userIds"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	URL     string   `json:"url"`
	Tag     string   `json:"tag"`
}

// BulkNotification fans a custom payload out to the listed users, or to
// every user when the list is empty. Partial failure is reported, never
// raised: the response is 200 with per-recipient outcomes.
func BulkNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkNotifyRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if req.Title == "" || req.Body == "" {
			respondError(w, d.Logger, &domain.ValidationError{Field: "title", Reason: "title and body are required"})
			return
		}

		userIDs := req.UserIDs
		if len(userIDs) == 0 {
			ids, err := d.Store.ListUserIDs(r.Context())
			if err != nil {
				respondError(w, d.Logger, err)
				return
			}
			userIDs = ids
		}

		evt := notify.Custom{Title: req.Title, Body: req.Body, URL: req.URL, Tag: req.Tag}
		result := d.Dispatcher.SendBulk(r.Context(), userIDs, notify.BuildPayload(evt))
		respondData(w, http.StatusOK, result)
	}
}

// respondOutcome keeps the delivery taxonomy visible to the caller: a
// skip is a 200 with status "skipped", only a hard failure is an error.
func respondOutcome(w http.ResponseWriter, d deps.Deps, outcome notify.Outcome) {
	switch outcome.Status {
	case notify.StatusSent, notify.StatusSkipped:
		respondData(w, http.StatusOK, outcome)
	default:
		respondError(w, d.Logger, outcome.Err)
	}
}
