// Package seed loads demo users from a YAML file into an empty store.
// Existing users are never touched, so seeding is safe to run at every
// startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

// Seeder applies a seed file against a user store.
type Seeder struct {
	store  store.UserStore
	logger logger.Logger
}

func New(s store.UserStore, log logger.Logger) *Seeder {
	return &Seeder{store: s, logger: log}
}

// Load reads and parses a users.yaml seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return f, nil
}

// Apply creates every user from the file that does not already exist.
// Returns the number of users created.
func (s *Seeder) Apply(ctx context.Context, f *File) (int, error) {
	created := 0
	for _, entry := range f.Users {
		ok, err := s.applyUser(ctx, entry)
		if err != nil {
			return created, fmt.Errorf("failed to seed user %q: %w", entry.Username, err)
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.logger.Info("seeded users", logger.Int("created", created))
	}
	return created, nil
}

func (s *Seeder) applyUser(ctx context.Context, entry UserEntry) (bool, error) {
	if entry.Username == "" || entry.Email == "" || entry.Password == "" {
		return false, errors.New("username, email, and password are required")
	}

	if _, err := s.store.GetUserByEmail(ctx, entry.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := domain.NewUser(entry.Username, entry.Email, string(hash))
	u.Profile.DisplayName = entry.DisplayName
	u.Profile.Bio = entry.Bio
	u.Profile.FavoriteGenres = append([]string(nil), entry.FavoriteGenres...)

	for _, b := range entry.Bookmarks {
		u.Bookmarks = append(u.Bookmarks, domain.Bookmark{
			MovieID:     b.MovieID,
			MovieTitle:  b.Title,
			MoviePoster: b.Poster,
			DateAdded:   now,
		})
	}
	for _, w := range entry.Watched {
		u.WatchLog = append(u.WatchLog, domain.WatchLogEntry{
			MovieID:     w.MovieID,
			MovieTitle:  w.Title,
			MoviePoster: w.Poster,
			Rating:      w.Rating,
			Status:      domain.StatusWatched,
			Progress:    domain.MaxProgress,
			DateAdded:   now,
			DateWatched: now,
		})
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		// Raced with another instance seeding the same file
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
