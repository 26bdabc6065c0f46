package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Etherlyvan/movie-mate/internal/domain"
)

// maxTxRetries bounds the optimistic-lock retry loop in UpdateUser.
// Contention on a single user is rare (one person's own requests), so a
// handful of retries is plenty.
const maxTxRetries = 5

// Store persists user aggregates in Redis. Each user is a single JSON
// document; mutations rewrite the whole document under WATCH so the
// embedded collections are atomically visible. Username and email
// uniqueness is enforced with SETNX index keys.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed user store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// CreateUser claims the username and email index keys, then writes the
// aggregate document. Returns domain.ErrDuplicateEntry if either index
// key is already taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	ok, err := s.client.SetNX(ctx, UsernameKey(u.Username), u.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim username: %w", err)
	}
	if !ok {
		return fmt.Errorf("username %q: %w", u.Username, domain.ErrDuplicateEntry)
	}

	ok, err = s.client.SetNX(ctx, EmailKey(u.Email), u.ID, 0).Result()
	if err != nil || !ok {
		// Roll back the username claim so the name is not orphaned.
		_ = s.client.Del(ctx, UsernameKey(u.Username)).Err()
		if err != nil {
			return fmt.Errorf("failed to claim email: %w", err)
		}
		return fmt.Errorf("email %q: %w", u.Email, domain.ErrDuplicateEntry)
	}

	if err := s.writeUser(ctx, u); err != nil {
		_ = s.client.Del(ctx, UsernameKey(u.Username), EmailKey(u.Email)).Err()
		return err
	}
	return nil
}

// GetUser retrieves a user aggregate by id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	data, err := s.client.Get(ctx, UserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail resolves the email index, then loads the aggregate.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := s.client.Get(ctx, EmailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("email %s: %w", email, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to resolve email: %w", err)
	}
	return s.GetUser(ctx, id)
}

// UpdateUser runs mutate against the current aggregate under WATCH and
// writes the result in a transaction. If another writer touches the same
// user key between read and write the transaction fails and the whole
// read-mutate-write cycle is retried. Errors returned by mutate abort the
// update and propagate unchanged (the ledger relies on this to surface
// ErrDuplicateEntry and ErrNotFound).
func (s *Store) UpdateUser(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	key := UserKey(id)
	var updated *domain.User

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		var u domain.User
		if err := json.Unmarshal(data, &u); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}

		if err := mutate(&u); err != nil {
			return err
		}

		out, err := json.Marshal(&u)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &u
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // concurrent write to the same user, retry
		}
		return nil, err
	}
	return nil, fmt.Errorf("user %s: update contention, gave up after %d attempts", id, maxTxRetries)
}

// ListUserIDs returns the ids of all known users.
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, KeyAllUsers).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	return ids, nil
}

// DeleteUser removes the aggregate and its index keys. The embedded
// collections disappear with the document (cascade by composition).
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, UserKey(id), UsernameKey(u.Username), EmailKey(u.Email))
	pipe.SRem(ctx, KeyAllUsers, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *Store) writeUser(ctx context.Context, u *domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, UserKey(u.ID), data, 0)
	pipe.SAdd(ctx, KeyAllUsers, u.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
