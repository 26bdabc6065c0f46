package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEntry is returned when an add would violate a uniqueness
	// invariant (bookmark per movie, username, email).
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrNotFound is returned when a removal or lookup target is absent.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports an out-of-range or malformed field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
