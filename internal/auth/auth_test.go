package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewStore(), logger.Nop(), "test-secret", time.Hour)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{"username too short", "ab", "a@b.com", "secret1", "username"},
		{"username bad chars", "bad name!", "a@b.com", "secret1", "username"},
		{"email missing at", "alice", "not-an-email", "secret1", "email"},
		{"email missing tld", "alice", "a@b", "secret1", "email"},
		{"password too short", "alice", "a@b.com", "12345", "password"},
	}

	svc := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token from register")
	}
	if u.PasswordHash == "hunter22" {
		t.Fatal("password stored in clear")
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "alice2", "alice@example.com", "hunter22")
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			t.Fatalf("expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("login with good credentials", func(t *testing.T) {
		lu, ltok, err := svc.Login(ctx, "alice@example.com", "hunter22")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if ltok == "" {
			t.Fatal("expected a token from login")
		}
		if lu.LastLogin.IsZero() {
			t.Fatal("expected LastLogin to be stamped")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter22")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	u := domain.NewUser("bob", "bob@example.com", "hash")

	token, err := svc.Token(u)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != u.ID {
		t.Fatalf("expected subject %q, got %q", u.ID, claims.Subject)
	}
	if claims.Username != "bob" || claims.Email != "bob@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	svc := newTestService(t)
	other := NewService(memory.NewStore(), logger.Nop(), "different-secret", time.Hour)

	u := domain.NewUser("eve", "eve@example.com", "hash")
	token, err := other.Token(u)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expected verification to fail for a token signed with another secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)
	svc.expiry = -time.Hour
	u := domain.NewUser("old", "old@example.com", "hash")

	token, err := svc.Token(u)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}
