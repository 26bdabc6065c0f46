// Package notify decides who may receive push notifications, builds the
// message payloads, and fans deliveries out to many recipients with
// settle-all semantics.
package notify

import (
	"fmt"
	"time"
)

// EventKind identifies the fixed set of notification events.
type EventKind string

const (
	EventBookmarkAdded EventKind = "bookmark-added"
	EventWatched       EventKind = "watched"
	EventTest          EventKind = "test"
	EventCustom        EventKind = "custom"
)

// Payload is the serializable message handed to the push transport. Tag is
// deterministic per event so the delivery channel can coalesce repeated
// notifications for the same entity.
type Payload struct {
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Icon      string            `json:"icon,omitempty"`
	Badge     string            `json:"badge,omitempty"`
	Type      EventKind         `json:"type"`
	Tag       string            `json:"tag"`
	URL       string            `json:"url,omitempty"`
	Timestamp int64             `json:"timestamp"` // unix milliseconds
	Extra     map[string]string `json:"extra,omitempty"`
}

// Default asset paths, matching what the web client serves.
const (
	defaultIcon  = "/icons/icon-192x192.png"
	defaultBadge = "/icons/badge-72x72.png"
)

// Event is the closed set of payload inputs. Each concrete event carries
// exactly the fields its kind needs, so BuildPayload can switch over them
// exhaustively.
type Event interface {
	kind() EventKind
}

// BookmarkAdded fires when a user bookmarks a movie.
type BookmarkAdded struct {
	MovieID    int
	MovieTitle string
}

// MovieWatched fires when a user marks a movie as watched.
type MovieWatched struct {
	MovieID    int
	MovieTitle string
	Rating     int // 0 when unrated
}

// TestPing is the manual "does push work" notification.
type TestPing struct{}

// Custom is a free-form notification (broadcasts, reminders).
type Custom struct {
	Title string
	Body  string
	URL   string
	Tag   string // optional; defaults to "custom"
	Extra map[string]string
}

func (BookmarkAdded) kind() EventKind { return EventBookmarkAdded }
func (MovieWatched) kind() EventKind  { return EventWatched }
func (TestPing) kind() EventKind      { return EventTest }
func (Custom) kind() EventKind        { return EventCustom }

// BuildPayload maps an event to its message. Pure aside from the
// timestamp; no network or storage side effects.
func BuildPayload(evt Event) Payload {
	p := Payload{
		Icon:      defaultIcon,
		Badge:     defaultBadge,
		Type:      evt.kind(),
		Timestamp: time.Now().UnixMilli(),
	}

	switch e := evt.(type) {
	case BookmarkAdded:
		p.Title = "🔖 Movie Bookmarked"
		p.Body = fmt.Sprintf("%q has been added to your watchlist", e.MovieTitle)
		p.Tag = fmt.Sprintf("bookmark-%d", e.MovieID)
		p.URL = fmt.Sprintf("/movies/%d", e.MovieID)
	case MovieWatched:
		p.Title = "🎬 Movie Watched"
		if e.Rating > 0 {
			p.Body = fmt.Sprintf("You've watched %q and rated it %d/10", e.MovieTitle, e.Rating)
		} else {
			p.Body = fmt.Sprintf("You've watched %q", e.MovieTitle)
		}
		p.Tag = fmt.Sprintf("watched-%d", e.MovieID)
		p.URL = fmt.Sprintf("/movies/%d", e.MovieID)
	case TestPing:
		p.Title = "🎬 Test Notification"
		p.Body = "This is a test notification from Movie Mate!"
		p.Tag = "test-notification"
		p.URL = "/dashboard"
	case Custom:
		p.Title = e.Title
		p.Body = e.Body
		p.URL = e.URL
		p.Tag = e.Tag
		if p.Tag == "" {
			p.Tag = "custom"
		}
		p.Extra = e.Extra
	}
	return p
}
