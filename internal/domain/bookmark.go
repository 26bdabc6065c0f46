package domain

import "time"

// Bookmark is a user's saved intent to watch a movie later.
// It is a set-membership fact: exactly one bookmark may exist per
// (user, movie) pair, and it carries no mutable payload.
type Bookmark struct {
	// MovieID is the external catalog identifier (e.g. TMDB id).
	// Unique within the owning user's bookmark collection.
	MovieID int `json:"movieId"`

	// MovieTitle and MoviePoster are denormalized at write time so the
	// bookmark stays renderable even if the catalog lookup is unavailable.
	MovieTitle  string `json:"movieTitle"`
	MoviePoster string `json:"moviePoster,omitempty"`

	// DateAdded is set at creation and never mutated afterwards.
	DateAdded time.Time `json:"dateAdded"`
}
