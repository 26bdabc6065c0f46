// Package memory provides an in-memory UserStore used by tests and as a
// dev-mode fallback when Redis is not configured. State is lost on restart.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Etherlyvan/movie-mate/internal/domain"
)

// Store keeps user aggregates in maps guarded by a single RWMutex.
// Mutations operate on clones and swap the stored pointer, so a reader
// never observes a half-written aggregate. The single lock is fine at
// the dev/test scale this store exists for; the Redis store provides the
// per-user compare-and-swap used in production.
type Store struct {
	mu         sync.RWMutex
	users      map[string]*domain.User // id -> aggregate
	byEmail    map[string]string       // lowercased email -> id
	byUsername map[string]string       // lowercased username -> id
}

// NewStore creates an empty in-memory user store.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*domain.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[strings.ToLower(u.Username)]; taken {
		return fmt.Errorf("username %q: %w", u.Username, domain.ErrDuplicateEntry)
	}
	if _, taken := s.byEmail[strings.ToLower(u.Email)]; taken {
		return fmt.Errorf("email %q: %w", u.Email, domain.ErrDuplicateEntry)
	}

	s.users[u.ID] = u.Clone()
	s.byUsername[strings.ToLower(u.Username)] = u.ID
	s.byEmail[strings.ToLower(u.Email)] = u.ID
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}
	return u.Clone(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrUserNotFound)
	}
	return s.users[id].Clone(), nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}

	c := u.Clone()
	if err := mutate(c); err != nil {
		return nil, err
	}
	s.users[id] = c
	return c.Clone(), nil
}

func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}
