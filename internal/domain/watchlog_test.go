package domain

import (
	"testing"
	"time"
)

func TestParseWatchStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    WatchStatus
		wantErr bool
	}{
		{name: "watched", input: "watched", want: StatusWatched},
		{name: "watching", input: "watching", want: StatusWatching},
		{name: "want to watch", input: "want_to_watch", want: StatusWantToWatch},
		{name: "dropped", input: "dropped", want: StatusDropped},
		{name: "unknown", input: "binged", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong case", input: "Watched", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWatchStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWatchStatus(%q) = %v, want error", tt.input, got)
				}
				if !IsValidation(err) {
					t.Errorf("ParseWatchStatus(%q) error = %v, want ValidationError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWatchStatus(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWatchStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{name: "unrated", rating: 0},
		{name: "min", rating: 1},
		{name: "max", rating: 10},
		{name: "too high", rating: 11, wantErr: true},
		{name: "negative", rating: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRating(tt.rating)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRating(%d) error = %v, wantErr %v", tt.rating, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		wantErr  bool
	}{
		{name: "zero", progress: 0},
		{name: "complete", progress: 100},
		{name: "over", progress: 101, wantErr: true},
		{name: "negative", progress: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgress(tt.progress)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgress(%d) error = %v, wantErr %v", tt.progress, err, tt.wantErr)
			}
		})
	}
}

func TestWatchedAtFallsBackToDateAdded(t *testing.T) {
	added := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	watched := time.Date(2025, 3, 5, 20, 0, 0, 0, time.UTC)

	e := WatchLogEntry{DateAdded: added}
	if got := e.WatchedAt(); !got.Equal(added) {
		t.Errorf("WatchedAt() = %v, want DateAdded %v", got, added)
	}

	e.DateWatched = watched
	if got := e.WatchedAt(); !got.Equal(watched) {
		t.Errorf("WatchedAt() = %v, want DateWatched %v", got, watched)
	}
}

func TestUserCloneIsIndependent(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "hash")
	u.Bookmarks = append(u.Bookmarks, Bookmark{MovieID: 278, MovieTitle: "The Shawshank Redemption"})

	c := u.Clone()
	c.Bookmarks[0].MovieTitle = "changed"
	c.Bookmarks = append(c.Bookmarks, Bookmark{MovieID: 13})
	c.Preferences.Notifications.Push = false

	if u.Bookmarks[0].MovieTitle != "The Shawshank Redemption" {
		t.Error("Clone() shares bookmark backing array with original")
	}
	if len(u.Bookmarks) != 1 {
		t.Errorf("original bookmark count = %d, want 1", len(u.Bookmarks))
	}
	if !u.Preferences.Notifications.Push {
		t.Error("Clone() shares preferences with original")
	}
}
