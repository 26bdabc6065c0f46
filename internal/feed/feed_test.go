package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/store/memory"
)

func seedUser(t *testing.T, mutate func(*domain.User)) (*Aggregator, string) {
	t.Helper()
	s := memory.NewStore()
	u := domain.NewUser("alice", "alice@example.com", "hash")
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if mutate != nil {
		if _, err := s.UpdateUser(context.Background(), u.ID, func(mu *domain.User) error {
			mutate(mu)
			return nil
		}); err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
	}
	return NewAggregator(s), u.ID
}

func at(day int) time.Time {
	return time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC)
}

func TestBuildActivityFeedMergesAndOrders(t *testing.T) {
	// Bookmarks at t1<t2<t3, watched entries at t0<t4. With limit 4 the
	// merged feed is t4,t3,t2,t1 with correct source tags.
	a, id := seedUser(t, func(u *domain.User) {
		u.Bookmarks = []domain.Bookmark{
			{MovieID: 1, MovieTitle: "one", DateAdded: at(1)},
			{MovieID: 2, MovieTitle: "two", DateAdded: at(2)},
			{MovieID: 3, MovieTitle: "three", DateAdded: at(3)},
		}
		u.WatchLog = []domain.WatchLogEntry{
			{MovieID: 10, MovieTitle: "ten", Status: domain.StatusWatched, DateAdded: at(0), DateWatched: at(0)},
			{MovieID: 14, MovieTitle: "fourteen", Status: domain.StatusWatched, DateAdded: at(4), DateWatched: at(4)},
		}
	})

	items, err := a.BuildActivityFeed(context.Background(), id, 4)
	if err != nil {
		t.Fatalf("BuildActivityFeed() error = %v", err)
	}

	want := []struct {
		movieID int
		kind    Kind
		date    time.Time
	}{
		{14, KindWatched, at(4)},
		{3, KindBookmarked, at(3)},
		{2, KindBookmarked, at(2)},
		{1, KindBookmarked, at(1)},
	}
	if len(items) != len(want) {
		t.Fatalf("BuildActivityFeed() returned %d items, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].MovieID != w.movieID || items[i].Type != w.kind || !items[i].Date.Equal(w.date) {
			t.Errorf("item[%d] = {%d %s %v}, want {%d %s %v}",
				i, items[i].MovieID, items[i].Type, items[i].Date, w.movieID, w.kind, w.date)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i].Date.After(items[i-1].Date) {
			t.Errorf("feed not descending at %d: %v after %v", i, items[i].Date, items[i-1].Date)
		}
	}
}

func TestBuildActivityFeedExcludesUnwatchedStatuses(t *testing.T) {
	a, id := seedUser(t, func(u *domain.User) {
		u.WatchLog = []domain.WatchLogEntry{
			{MovieID: 1, Status: domain.StatusWatched, DateAdded: at(1), DateWatched: at(1)},
			{MovieID: 2, Status: domain.StatusWatching, DateAdded: at(2)},
			{MovieID: 3, Status: domain.StatusWantToWatch, DateAdded: at(3)},
			{MovieID: 4, Status: domain.StatusDropped, DateAdded: at(4)},
		}
	})

	items, err := a.BuildActivityFeed(context.Background(), id, 10)
	if err != nil {
		t.Fatalf("BuildActivityFeed() error = %v", err)
	}
	if len(items) != 1 || items[0].MovieID != 1 {
		t.Errorf("feed = %+v, want only the watched entry", items)
	}
}

func TestBuildActivityFeedFallsBackToDateAdded(t *testing.T) {
	a, id := seedUser(t, func(u *domain.User) {
		u.WatchLog = []domain.WatchLogEntry{
			{MovieID: 1, Status: domain.StatusWatched, DateAdded: at(5)}, // no DateWatched
		}
	})

	items, err := a.BuildActivityFeed(context.Background(), id, 10)
	if err != nil {
		t.Fatalf("BuildActivityFeed() error = %v", err)
	}
	if len(items) != 1 || !items[0].Date.Equal(at(5)) {
		t.Errorf("feed = %+v, want single item dated %v", items, at(5))
	}
}

func TestBuildActivityFeedStableTieBreak(t *testing.T) {
	same := at(7)
	a, id := seedUser(t, func(u *domain.User) {
		u.WatchLog = []domain.WatchLogEntry{
			{MovieID: 100, Status: domain.StatusWatched, DateAdded: same, DateWatched: same},
			{MovieID: 200, Status: domain.StatusWatched, DateAdded: same, DateWatched: same},
		}
	})

	items, err := a.BuildActivityFeed(context.Background(), id, 10)
	if err != nil {
		t.Fatalf("BuildActivityFeed() error = %v", err)
	}
	if len(items) != 2 || items[0].MovieID != 100 || items[1].MovieID != 200 {
		t.Errorf("equal timestamps reordered: %+v", items)
	}
}

func TestBuildActivityFeedDefaultLimit(t *testing.T) {
	a, id := seedUser(t, func(u *domain.User) {
		for i := 1; i <= 25; i++ {
			u.Bookmarks = append(u.Bookmarks, domain.Bookmark{MovieID: i, DateAdded: at(i)})
		}
	})

	items, err := a.BuildActivityFeed(context.Background(), id, 0)
	if err != nil {
		t.Fatalf("BuildActivityFeed() error = %v", err)
	}
	if len(items) != DefaultLimit {
		t.Errorf("feed length = %d, want default %d", len(items), DefaultLimit)
	}
}

func TestComputeStatistics(t *testing.T) {
	// Ratings [8, unrated, 6, 10]: average 8.0, unrated excluded from the
	// mean but counted in totalWatched.
	a, id := seedUser(t, func(u *domain.User) {
		u.Profile.FavoriteGenres = []string{"Drama", "Sci-Fi"}
		u.Bookmarks = []domain.Bookmark{
			{MovieID: 1, DateAdded: at(1)},
			{MovieID: 2, DateAdded: at(2)},
		}
		u.WatchLog = []domain.WatchLogEntry{
			{MovieID: 10, Status: domain.StatusWatched, Rating: 8},
			{MovieID: 11, Status: domain.StatusWatched},
			{MovieID: 12, Status: domain.StatusWatched, Rating: 6},
			{MovieID: 13, Status: domain.StatusWatched, Rating: 10},
			{MovieID: 14, Status: domain.StatusWatching, Rating: 3}, // not watched, ignored
		}
	})

	stats, err := a.ComputeStatistics(context.Background(), id)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}
	if stats.TotalWatched != 4 {
		t.Errorf("TotalWatched = %d, want 4", stats.TotalWatched)
	}
	if stats.TotalBookmarked != 2 {
		t.Errorf("TotalBookmarked = %d, want 2", stats.TotalBookmarked)
	}
	if stats.AverageRating != 8.0 {
		t.Errorf("AverageRating = %v, want 8.0", stats.AverageRating)
	}
	if len(stats.FavoriteGenres) != 2 || stats.FavoriteGenres[0] != "Drama" {
		t.Errorf("FavoriteGenres = %v, want profile genres", stats.FavoriteGenres)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	a, id := seedUser(t, nil)
	stats, err := a.ComputeStatistics(context.Background(), id)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}
	if stats.TotalWatched != 0 || stats.TotalBookmarked != 0 || stats.AverageRating != 0 {
		t.Errorf("empty user stats = %+v, want zeros", stats)
	}
	if stats.FavoriteGenres == nil {
		t.Error("FavoriteGenres should be an empty slice, not nil")
	}
}

func TestAggregatorSurfacesUserNotFound(t *testing.T) {
	a, _ := seedUser(t, nil)
	if _, err := a.BuildActivityFeed(context.Background(), "ghost", 10); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("BuildActivityFeed() error = %v, want ErrUserNotFound", err)
	}
	if _, err := a.ComputeStatistics(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("ComputeStatistics() error = %v, want ErrUserNotFound", err)
	}
}
