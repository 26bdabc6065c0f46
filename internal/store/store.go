package store

import (
	"context"

	"github.com/Etherlyvan/movie-mate/internal/domain"
)

// UserStore is the only access path to user aggregates. Mutations go
// through UpdateUser so the whole aggregate is rewritten atomically and a
// reader can never observe a half-written collection.
type UserStore interface {
	// CreateUser persists a new user. Returns domain.ErrDuplicateEntry if
	// the username or email is already taken.
	CreateUser(ctx context.Context, u *domain.User) error

	// GetUser returns the aggregate for id, or domain.ErrUserNotFound.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// GetUserByEmail resolves a user by email, or domain.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUser applies mutate to the aggregate under a per-user
	// compare-and-swap and persists the result. If mutate returns an
	// error the write is aborted and that error is returned unchanged.
	// Different users update fully concurrently; only writes to the same
	// user contend.
	UpdateUser(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error)

	// ListUserIDs returns the ids of all known users.
	ListUserIDs(ctx context.Context) ([]string, error)
}
