// Package ledger implements the invariant-preserving mutations of a
// user's bookmark and watch-log collections. It is the only component
// allowed to mutate them; every write goes through the store's per-user
// compare-and-swap so concurrent requests from the same user serialize
// without a global lock.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

// Ledger mutates the embedded collections of user aggregates.
//
// The asymmetry between the two collections is deliberate: a bookmark is
// a set-membership fact with no payload worth merging, so duplicates are
// rejected; a watch-log entry carries a rating and review that
// legitimately change on re-watch, so the upsert path overwrites in place.
type Ledger struct {
	store  store.UserStore
	logger logger.Logger
	now    func() time.Time
}

// New creates a ledger over the given store.
func New(s store.UserStore, log logger.Logger) *Ledger {
	return &Ledger{store: s, logger: log, now: time.Now}
}

// AddBookmark creates a bookmark for (userID, movieID). Returns
// domain.ErrDuplicateEntry if one already exists; a duplicate add is
// rejected, never silently merged.
func (l *Ledger) AddBookmark(ctx context.Context, userID string, movieID int, title, poster string) (*domain.Bookmark, error) {
	var added domain.Bookmark

	_, err := l.store.UpdateUser(ctx, userID, func(u *domain.User) error {
		for i := range u.Bookmarks {
			if u.Bookmarks[i].MovieID == movieID {
				return fmt.Errorf("movie %d already bookmarked: %w", movieID, domain.ErrDuplicateEntry)
			}
		}
		added = domain.Bookmark{
			MovieID:     movieID,
			MovieTitle:  title,
			MoviePoster: poster,
			DateAdded:   l.now(),
		}
		u.Bookmarks = append(u.Bookmarks, added)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("bookmark added",
		logger.String("user_id", userID),
		logger.Int("movie_id", movieID))
	return &added, nil
}

// RemoveBookmark deletes the bookmark for (userID, movieID). Returns
// domain.ErrNotFound if none exists.
func (l *Ledger) RemoveBookmark(ctx context.Context, userID string, movieID int) error {
	_, err := l.store.UpdateUser(ctx, userID, func(u *domain.User) error {
		for i := range u.Bookmarks {
			if u.Bookmarks[i].MovieID == movieID {
				u.Bookmarks = append(u.Bookmarks[:i], u.Bookmarks[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("movie %d not bookmarked: %w", movieID, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	l.logger.Debug("bookmark removed",
		logger.String("user_id", userID),
		logger.Int("movie_id", movieID))
	return nil
}

// IsBookmarked reports whether the user has movieID bookmarked. An absent
// user surfaces domain.ErrUserNotFound rather than a silent false.
func (l *Ledger) IsBookmarked(ctx context.Context, userID string, movieID int) (bool, error) {
	u, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for i := range u.Bookmarks {
		if u.Bookmarks[i].MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

// UpsertWatchLog marks movieID as watched. If an entry already exists for
// the movie it is overwritten in place (title, poster, rating, review,
// status=watched, progress=100, DateWatched refreshed) while the original
// DateAdded is preserved; otherwise a new entry is created. This is the one
// ledger operation that is idempotent by merge and never fails on a
// duplicate. rating is 0 (unrated) or 1..10.
func (l *Ledger) UpsertWatchLog(ctx context.Context, userID string, movieID int, title, poster string, rating int, review string) (*domain.WatchLogEntry, error) {
	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	var result domain.WatchLogEntry

	_, err := l.store.UpdateUser(ctx, userID, func(u *domain.User) error {
		now := l.now()
		for i := range u.WatchLog {
			if u.WatchLog[i].MovieID != movieID {
				continue
			}
			e := &u.WatchLog[i]
			e.MovieTitle = title
			e.MoviePoster = poster
			e.Status = domain.StatusWatched
			e.Rating = rating
			e.Review = review
			e.Progress = domain.MaxProgress
			e.DateWatched = now // DateAdded stays untouched
			result = *e
			return nil
		}

		entry := domain.WatchLogEntry{
			MovieID:     movieID,
			MovieTitle:  title,
			MoviePoster: poster,
			Status:      domain.StatusWatched,
			Rating:      rating,
			Review:      review,
			Progress:    domain.MaxProgress,
			DateAdded:   now,
			DateWatched: now,
		}
		u.WatchLog = append(u.WatchLog, entry)
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("watch log upserted",
		logger.String("user_id", userID),
		logger.Int("movie_id", movieID),
		logger.Int("rating", rating))
	return &result, nil
}

// RemoveWatchLog deletes the watch-log entry for movieID whose status
// matches status. The filter is applied uniformly: an entry in another
// status is not removed and yields domain.ErrNotFound, same as an absent
// entry.
func (l *Ledger) RemoveWatchLog(ctx context.Context, userID string, movieID int, status domain.WatchStatus) error {
	_, err := l.store.UpdateUser(ctx, userID, func(u *domain.User) error {
		for i := range u.WatchLog {
			if u.WatchLog[i].MovieID == movieID && u.WatchLog[i].Status == status {
				u.WatchLog = append(u.WatchLog[:i], u.WatchLog[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("movie %d with status %q not in watch log: %w", movieID, status, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	l.logger.Debug("watch log entry removed",
		logger.String("user_id", userID),
		logger.Int("movie_id", movieID))
	return nil
}

// IsWatched reports whether the user has a watch-log entry for movieID
// with status watched. An absent user surfaces domain.ErrUserNotFound.
func (l *Ledger) IsWatched(ctx context.Context, userID string, movieID int) (bool, error) {
	u, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for i := range u.WatchLog {
		if u.WatchLog[i].MovieID == movieID && u.WatchLog[i].Status == domain.StatusWatched {
			return true, nil
		}
	}
	return false, nil
}
