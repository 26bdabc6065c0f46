package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store/memory"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	s := memory.NewStore()
	u := domain.NewUser("alice", "alice@example.com", "hash")
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return New(s, logger.Nop()), u.ID
}

func TestAddBookmarkThenCheck(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	bm, err := l.AddBookmark(ctx, userID, 278, "The Shawshank Redemption", "/poster.jpg")
	if err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if bm.MovieID != 278 || bm.MovieTitle != "The Shawshank Redemption" {
		t.Errorf("AddBookmark() = %+v, wrong fields", bm)
	}
	if bm.DateAdded.IsZero() {
		t.Error("AddBookmark() left DateAdded unset")
	}

	got, err := l.IsBookmarked(ctx, userID, 278)
	if err != nil || !got {
		t.Errorf("IsBookmarked() = %v, %v, want true, nil", got, err)
	}
}

func TestAddBookmarkRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	if _, err := l.AddBookmark(ctx, userID, 278, "The Shawshank Redemption", ""); err != nil {
		t.Fatalf("first AddBookmark() error = %v", err)
	}
	_, err := l.AddBookmark(ctx, userID, 278, "The Shawshank Redemption", "")
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Errorf("second AddBookmark() error = %v, want ErrDuplicateEntry", err)
	}
}

func TestRemoveBookmark(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	if _, err := l.AddBookmark(ctx, userID, 278, "The Shawshank Redemption", ""); err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if err := l.RemoveBookmark(ctx, userID, 278); err != nil {
		t.Fatalf("RemoveBookmark() error = %v", err)
	}

	got, err := l.IsBookmarked(ctx, userID, 278)
	if err != nil || got {
		t.Errorf("IsBookmarked() after remove = %v, %v, want false, nil", got, err)
	}

	if err := l.RemoveBookmark(ctx, userID, 278); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second RemoveBookmark() error = %v, want ErrNotFound", err)
	}
}

func TestBookmarkLookupOnAbsentUser(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.IsBookmarked(context.Background(), "ghost", 278); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("IsBookmarked() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpsertWatchLogMergesInPlace(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	first, err := l.UpsertWatchLog(ctx, userID, 278, "The Shawshank Redemption", "/p.jpg", 7, "good")
	if err != nil {
		t.Fatalf("first UpsertWatchLog() error = %v", err)
	}
	if first.Status != domain.StatusWatched || first.Progress != 100 {
		t.Errorf("first upsert = %+v, want watched/100", first)
	}
	if first.DateAdded.IsZero() || first.DateWatched.IsZero() {
		t.Error("first upsert left dates unset")
	}

	time.Sleep(5 * time.Millisecond) // distinct DateWatched

	second, err := l.UpsertWatchLog(ctx, userID, 278, "The Shawshank Redemption", "/p.jpg", 9, "even better")
	if err != nil {
		t.Fatalf("second UpsertWatchLog() error = %v", err)
	}

	if second.Rating != 9 || second.Review != "even better" {
		t.Errorf("second upsert kept stale fields: %+v", second)
	}
	if !second.DateAdded.Equal(first.DateAdded) {
		t.Errorf("upsert mutated DateAdded: %v -> %v", first.DateAdded, second.DateAdded)
	}
	if !second.DateWatched.After(first.DateWatched) {
		t.Errorf("upsert did not refresh DateWatched: %v -> %v", first.DateWatched, second.DateWatched)
	}

	// Still exactly one entry for the movie.
	if err := l.RemoveWatchLog(ctx, userID, 278, domain.StatusWatched); err != nil {
		t.Fatalf("RemoveWatchLog() error = %v", err)
	}
	if err := l.RemoveWatchLog(ctx, userID, 278, domain.StatusWatched); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("upsert created a duplicate entry: second remove error = %v, want ErrNotFound", err)
	}
}

func TestUpsertWatchLogRejectsBadRating(t *testing.T) {
	l, userID := newTestLedger(t)
	_, err := l.UpsertWatchLog(context.Background(), userID, 278, "x", "", 11, "")
	if !domain.IsValidation(err) {
		t.Errorf("UpsertWatchLog(rating=11) error = %v, want ValidationError", err)
	}
}

func TestRemoveWatchLogHonorsStatusFilter(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	if _, err := l.UpsertWatchLog(ctx, userID, 278, "The Shawshank Redemption", "", 0, ""); err != nil {
		t.Fatalf("UpsertWatchLog() error = %v", err)
	}

	// The entry is watched; asking to remove a dropped one must not touch it.
	if err := l.RemoveWatchLog(ctx, userID, 278, domain.StatusDropped); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("RemoveWatchLog(dropped) error = %v, want ErrNotFound", err)
	}
	watched, err := l.IsWatched(ctx, userID, 278)
	if err != nil || !watched {
		t.Errorf("IsWatched() after filtered remove = %v, %v, want true, nil", watched, err)
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	if _, err := l.AddBookmark(ctx, userID, 278, "The Shawshank Redemption", ""); err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if _, err := l.UpsertWatchLog(ctx, userID, 278, "The Shawshank Redemption", "", 9, ""); err != nil {
		t.Fatalf("UpsertWatchLog() error = %v", err)
	}

	if err := l.RemoveBookmark(ctx, userID, 278); err != nil {
		t.Fatalf("RemoveBookmark() error = %v", err)
	}

	bookmarked, _ := l.IsBookmarked(ctx, userID, 278)
	watched, _ := l.IsWatched(ctx, userID, 278)
	if bookmarked {
		t.Error("bookmark survived removal")
	}
	if !watched {
		t.Error("removing the bookmark also removed the watch-log entry")
	}
}

func TestConcurrentAddsKeepUniqueness(t *testing.T) {
	ctx := context.Background()
	l, userID := newTestLedger(t)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.AddBookmark(ctx, userID, 278, "The Shawshank Redemption", "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDuplicateEntry):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d concurrent adds succeeded, want exactly 1", succeeded)
	}
}
