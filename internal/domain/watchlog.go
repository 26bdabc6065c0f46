package domain

import (
	"fmt"
	"time"
)

// WatchStatus describes where a movie sits in a user's watch log.
type WatchStatus string

const (
	StatusWatched     WatchStatus = "watched"
	StatusWatching    WatchStatus = "watching"
	StatusWantToWatch WatchStatus = "want_to_watch"
	StatusDropped     WatchStatus = "dropped"
)

// ParseWatchStatus validates a raw status value.
func ParseWatchStatus(s string) (WatchStatus, error) {
	switch WatchStatus(s) {
	case StatusWatched, StatusWatching, StatusWantToWatch, StatusDropped:
		return WatchStatus(s), nil
	}
	return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", s)}
}

// Rating bounds. A zero rating means "not rated" and is excluded from
// statistics rather than counted as zero.
const (
	MinRating = 1
	MaxRating = 10

	MinProgress = 0
	MaxProgress = 100
)

// WatchLogEntry records that a user watched (or is progressing through)
// a movie. Unlike bookmarks, entries merge on re-watch: rating and review
// legitimately change, so the upsert path overwrites in place.
type WatchLogEntry struct {
	// MovieID is unique within the owning user's watch log.
	MovieID int `json:"movieId"`

	MovieTitle  string `json:"movieTitle"`
	MoviePoster string `json:"moviePoster,omitempty"`

	Status WatchStatus `json:"status"`

	// Rating is 1..10, or 0 when the user has not rated the movie.
	Rating int `json:"rating,omitempty"`

	Review string `json:"review,omitempty"`

	// Progress is 0..100 percent.
	Progress int `json:"progress"`

	// DateAdded is set at first creation and preserved across upserts.
	DateAdded time.Time `json:"dateAdded"`

	// DateWatched is set (and overwritten) whenever the status becomes
	// watched. Zero until then.
	DateWatched time.Time `json:"dateWatched,omitempty"`
}

// ValidateRating accepts 0 (unrated) or a value within [MinRating, MaxRating].
func ValidateRating(rating int) error {
	if rating == 0 {
		return nil
	}
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinRating, MaxRating, rating),
		}
	}
	return nil
}

// ValidateProgress accepts a value within [MinProgress, MaxProgress].
func ValidateProgress(progress int) error {
	if progress < MinProgress || progress > MaxProgress {
		return &ValidationError{
			Field:  "progress",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinProgress, MaxProgress, progress),
		}
	}
	return nil
}

// WatchedAt returns the timestamp to order the entry by in activity feeds:
// DateWatched when present, DateAdded otherwise.
func (e *WatchLogEntry) WatchedAt() time.Time {
	if !e.DateWatched.IsZero() {
		return e.DateWatched
	}
	return e.DateAdded
}
