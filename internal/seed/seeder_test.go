package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store/memory"
)

const sampleYAML = `
users:
  - username: demo
    email: demo@example.com
    password: demo-pass
    display_name: Demo User
    favorite_genres: [Drama, Thriller]
    bookmarks:
      - movie_id: 278
        title: The Shawshank Redemption
        poster: /q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg
    watched:
      - movie_id: 238
        title: The Godfather
        rating: 9
  - username: second
    email: second@example.com
    password: other-pass
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoadAndApply(t *testing.T) {
	f, err := Load(writeSeedFile(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(f.Users))
	}

	st := memory.NewStore()
	seeder := New(st, logger.Nop())
	ctx := context.Background()

	created, err := seeder.Apply(ctx, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 users created, got %d", created)
	}

	u, err := st.GetUserByEmail(ctx, "demo@example.com")
	if err != nil {
		t.Fatalf("get seeded user: %v", err)
	}
	if u.Profile.DisplayName != "Demo User" {
		t.Errorf("expected display name carried over, got %q", u.Profile.DisplayName)
	}
	if len(u.Bookmarks) != 1 || u.Bookmarks[0].MovieID != 278 {
		t.Errorf("unexpected bookmarks: %+v", u.Bookmarks)
	}
	if len(u.WatchLog) != 1 || u.WatchLog[0].Rating != 9 {
		t.Errorf("unexpected watch log: %+v", u.WatchLog)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("demo-pass")) != nil {
		t.Error("expected password to be bcrypt hashed")
	}

	t.Run("second apply is a no-op", func(t *testing.T) {
		created, err := seeder.Apply(ctx, f)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if created != 0 {
			t.Fatalf("expected 0 users created on re-apply, got %d", created)
		}
	})
}

func TestApplyRejectsIncompleteEntry(t *testing.T) {
	f := &File{Users: []UserEntry{{Username: "nopass", Email: "nopass@example.com"}}}
	seeder := New(memory.NewStore(), logger.Nop())

	if _, err := seeder.Apply(context.Background(), f); err == nil {
		t.Fatal("expected an error for an entry without a password")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load(writeSeedFile(t, "users: [not valid")); err == nil {
		t.Fatal("expected a parse error")
	}
}
