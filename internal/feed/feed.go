// Package feed derives read-only views from a user's collections: the
// merged activity feed and summary statistics. It never mutates state.
package feed

import (
	"context"
	"sort"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

// DefaultLimit is the feed size used when the caller does not ask for one.
const DefaultLimit = 10

// Kind tags an activity item with its source collection.
type Kind string

const (
	KindWatched    Kind = "watched"
	KindBookmarked Kind = "bookmarked"
)

// ActivityItem is one row of the merged feed.
type ActivityItem struct {
	Type        Kind   `json:"type"`
	MovieID     int    `json:"movieId"`
	MovieTitle  string `json:"movieTitle"`
	MoviePoster string `json:"moviePoster,omitempty"`
	Rating      int    `json:"rating,omitempty"`
	// Date is the timestamp the item is ordered by: DateWatched (falling
	// back to DateAdded) for watched entries, DateAdded for bookmarks.
	Date time.Time `json:"date"`
}

// Statistics summarizes a user's interaction history.
type Statistics struct {
	TotalWatched    int `json:"totalWatched"`
	TotalBookmarked int `json:"totalBookmarked"`
	// AverageRating is the mean over watched entries that carry a rating;
	// unrated entries are excluded from both numerator and denominator.
	AverageRating float64 `json:"averageRating"`
	// FavoriteGenres is sourced from the profile preference, not derived
	// from watch-log genre tags (entries do not store genre data). The two
	// sources are never mixed.
	FavoriteGenres []string `json:"favoriteGenres"`
}

// Aggregator builds feeds and statistics from the user store.
type Aggregator struct {
	store store.UserStore
}

// NewAggregator creates a read-side aggregator.
func NewAggregator(s store.UserStore) *Aggregator {
	return &Aggregator{store: s}
}

// BuildActivityFeed returns up to limit items merged from the watched
// subset of the watch log and the full bookmark collection, sorted by date
// descending. Each source is truncated to limit before the merge, then the
// merged list is re-sorted and truncated again. Sorting is stable so items
// with equal timestamps keep their original relative order.
func (a *Aggregator) BuildActivityFeed(ctx context.Context, userID string, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	u, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	watched := make([]ActivityItem, 0, len(u.WatchLog))
	for i := range u.WatchLog {
		e := &u.WatchLog[i]
		if e.Status != domain.StatusWatched {
			continue
		}
		watched = append(watched, ActivityItem{
			Type:        KindWatched,
			MovieID:     e.MovieID,
			MovieTitle:  e.MovieTitle,
			MoviePoster: e.MoviePoster,
			Rating:      e.Rating,
			Date:        e.WatchedAt(),
		})
	}

	bookmarked := make([]ActivityItem, 0, len(u.Bookmarks))
	for i := range u.Bookmarks {
		b := &u.Bookmarks[i]
		bookmarked = append(bookmarked, ActivityItem{
			Type:        KindBookmarked,
			MovieID:     b.MovieID,
			MovieTitle:  b.MovieTitle,
			MoviePoster: b.MoviePoster,
			Date:        b.DateAdded,
		})
	}

	watched = sortAndTruncate(watched, limit)
	bookmarked = sortAndTruncate(bookmarked, limit)

	merged := append(watched, bookmarked...)
	return sortAndTruncate(merged, limit), nil
}

// ComputeStatistics summarizes the user's collections in one pass.
func (a *Aggregator) ComputeStatistics(ctx context.Context, userID string) (*Statistics, error) {
	u, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalBookmarked: len(u.Bookmarks),
		FavoriteGenres:  u.Profile.FavoriteGenres,
	}
	if stats.FavoriteGenres == nil {
		stats.FavoriteGenres = []string{}
	}

	ratingSum, rated := 0, 0
	for i := range u.WatchLog {
		e := &u.WatchLog[i]
		if e.Status != domain.StatusWatched {
			continue
		}
		stats.TotalWatched++
		if e.Rating > 0 {
			ratingSum += e.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}
	return stats, nil
}

func sortAndTruncate(items []ActivityItem, limit int) []ActivityItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
