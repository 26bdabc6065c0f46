// Package auth is the identity boundary: registration, login, and JWT
// mint/verify. It owns password hashing and nothing else touches it.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

// bcryptCost matches the original backend's work factor.
const bcryptCost = 12

const minPasswordLength = 6

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ErrInvalidCredentials is returned on a failed login. It deliberately
// does not distinguish unknown email from wrong password.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// Claims is the JWT payload.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Service handles registration, login, and tokens.
type Service struct {
	store  store.UserStore
	logger logger.Logger
	secret []byte
	expiry time.Duration
}

// NewService creates an auth service. expiry <= 0 defaults to 7 days.
func NewService(s store.UserStore, log logger.Logger, secret string, expiry time.Duration) *Service {
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &Service{store: s, logger: log, secret: []byte(secret), expiry: expiry}
}

// Register validates the fields, hashes the password, and creates the
// user. Username and email uniqueness violations surface as
// domain.ErrDuplicateEntry from the store.
func (s *Service) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if !usernamePattern.MatchString(username) {
		return nil, "", &domain.ValidationError{Field: "username", Reason: "must be 3-20 characters of letters, numbers, and underscores"}
	}
	if !emailPattern.MatchString(email) {
		return nil, "", &domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if len(password) < minPasswordLength {
		return nil, "", &domain.ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := domain.NewUser(username, email, string(hash))
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.Token(u)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered",
		logger.String("user_id", u.ID),
		logger.String("username", u.Username))
	return u, token, nil
}

// Login verifies the credentials, stamps the last login, and mints a token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	u, err = s.store.UpdateUser(ctx, u.ID, func(mu *domain.User) error {
		mu.LastLogin = time.Now()
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.Token(u)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", logger.String("user_id", u.ID))
	return u, token, nil
}

// Token mints a signed HS256 JWT for the user.
func (s *Service) Token(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token string, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
