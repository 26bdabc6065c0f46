package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root. It exclusively owns its bookmark and
// watch-log collections: they share the user's lifetime, are never shared
// across users, and are only mutated through the ledger.
type User struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	ID string `json:"id"`

	// Username is unique across users, 3-20 chars, [A-Za-z0-9_].
	Username string `json:"username"`

	// Email is unique across users.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed through the API.
	PasswordHash string `json:"passwordHash"`

	// ─────────────────────────────
	// Profile & settings
	// ─────────────────────────────

	Profile     Profile     `json:"profile"`
	Preferences Preferences `json:"preferences"`

	// PushSubscription is the opaque descriptor obtained from the client
	// at subscribe time and stored verbatim. Nil when not subscribed.
	// This service never inspects its internal structure; only the push
	// transport does.
	PushSubscription json.RawMessage `json:"pushSubscription,omitempty"`

	// ─────────────────────────────
	// Owned collections
	// ─────────────────────────────

	Bookmarks []Bookmark      `json:"bookmarks"`
	WatchLog  []WatchLogEntry `json:"watchLog"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

// Profile holds public-facing user details.
type Profile struct {
	DisplayName    string      `json:"displayName,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	Avatar         string      `json:"avatar,omitempty"`
	FavoriteGenres []string    `json:"favoriteGenres,omitempty"`
	Country        string      `json:"country,omitempty"`
	Website        string      `json:"website,omitempty"`
	SocialLinks    SocialLinks `json:"socialLinks,omitempty"`
	IsPublic       bool        `json:"isPublic"`
}

type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Preferences holds per-user settings.
type Preferences struct {
	Theme         string            `json:"theme"`    // "light" | "dark" | "auto"
	Language      string            `json:"language"` // ISO 639-1 code
	Notifications NotificationPrefs `json:"notifications"`
	Privacy       PrivacyPrefs      `json:"privacy"`
	Display       DisplayPrefs      `json:"display"`
}

// NotificationPrefs are per-channel toggles. Push is the gate the
// notification dispatcher re-evaluates before every send.
type NotificationPrefs struct {
	Email             bool `json:"email"`
	Push              bool `json:"push"`
	NewReleases       bool `json:"newReleases"`
	Recommendations   bool `json:"recommendations"`
	BookmarkReminders bool `json:"bookmarkReminders"`
}

type PrivacyPrefs struct {
	ShowProfile   bool `json:"showProfile"`
	ShowWatchlist bool `json:"showWatchlist"`
	ShowActivity  bool `json:"showActivity"`
}

type DisplayPrefs struct {
	MoviesPerPage int    `json:"moviesPerPage"`
	DefaultView   string `json:"defaultView"` // "grid" | "list"
}

// DefaultPreferences mirrors the defaults applied at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:    "dark",
		Language: "en",
		Notifications: NotificationPrefs{
			Email:             true,
			Push:              true,
			NewReleases:       true,
			Recommendations:   true,
			BookmarkReminders: true,
		},
		Privacy: PrivacyPrefs{
			ShowProfile:   true,
			ShowWatchlist: true,
			ShowActivity:  true,
		},
		Display: DisplayPrefs{
			MoviesPerPage: 20,
			DefaultView:   "grid",
		},
	}
}

// NewUser builds a user aggregate with empty collections and default
// preferences. The password must already be hashed.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      Profile{IsPublic: true},
		Preferences:  DefaultPreferences(),
		Bookmarks:    []Bookmark{},
		WatchLog:     []WatchLogEntry{},
		CreatedAt:    time.Now(),
	}
}

// Clone returns a deep copy of the user. Stores hand out clones so callers
// can never mutate a shared aggregate behind the ledger's back.
func (u *User) Clone() *User {
	c := *u
	if u.PushSubscription != nil {
		c.PushSubscription = append(json.RawMessage(nil), u.PushSubscription...)
	}
	c.Profile.FavoriteGenres = append([]string(nil), u.Profile.FavoriteGenres...)
	c.Bookmarks = append([]Bookmark(nil), u.Bookmarks...)
	c.WatchLog = append([]WatchLogEntry(nil), u.WatchLog...)
	return &c
}
