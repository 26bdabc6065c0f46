package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Etherlyvan/movie-mate/internal/domain"
)

func TestCreateUserEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.CreateUser(ctx, domain.NewUser("alice", "alice@example.com", "hash")); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{name: "duplicate username", username: "alice", email: "other@example.com"},
		{name: "duplicate username different case", username: "Alice", email: "other@example.com"},
		{name: "duplicate email", username: "bob", email: "alice@example.com"},
		{name: "duplicate email different case", username: "bob", email: "ALICE@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, domain.NewUser(tt.username, tt.email, "hash"))
			if !errors.Is(err, domain.ErrDuplicateEntry) {
				t.Errorf("CreateUser() error = %v, want ErrDuplicateEntry", err)
			}
		})
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := NewStore()
	if _, err := s.GetUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
	if _, err := s.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateUserAbortsOnMutateError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := domain.NewUser("alice", "alice@example.com", "hash")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	sentinel := errors.New("nope")
	_, err := s.UpdateUser(ctx, u.ID, func(mu *domain.User) error {
		mu.Bookmarks = append(mu.Bookmarks, domain.Bookmark{MovieID: 278})
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("UpdateUser() error = %v, want sentinel", err)
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.Bookmarks) != 0 {
		t.Errorf("aborted update leaked %d bookmarks into the store", len(got.Bookmarks))
	}
}

func TestUpdateUserConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := domain.NewUser("alice", "alice@example.com", "hash")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(movieID int) {
			defer wg.Done()
			_, err := s.UpdateUser(ctx, u.ID, func(mu *domain.User) error {
				mu.Bookmarks = append(mu.Bookmarks, domain.Bookmark{MovieID: movieID})
				return nil
			})
			if err != nil {
				t.Errorf("UpdateUser() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.Bookmarks) != n {
		t.Errorf("concurrent updates lost writes: got %d bookmarks, want %d", len(got.Bookmarks), n)
	}
}

func TestGetUserReturnsClone(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := domain.NewUser("alice", "alice@example.com", "hash")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	first, _ := s.GetUser(ctx, u.ID)
	first.Username = "mallory"
	first.Bookmarks = append(first.Bookmarks, domain.Bookmark{MovieID: 1})

	second, _ := s.GetUser(ctx, u.ID)
	if second.Username != "alice" || len(second.Bookmarks) != 0 {
		t.Error("mutating a returned aggregate leaked into the store")
	}
}
