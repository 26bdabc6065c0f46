package redis

import "strings"

const (
	// KeyPrefixUser is the prefix for user aggregate documents.
	KeyPrefixUser = "moviemate:user:"
	// KeyPrefixEmail is the prefix for the email -> user id uniqueness index.
	KeyPrefixEmail = "moviemate:email:"
	// KeyPrefixUsername is the prefix for the username -> user id uniqueness index.
	KeyPrefixUsername = "moviemate:username:"
	// KeyAllUsers is the set of all user ids.
	KeyAllUsers = "moviemate:users:all"
)

// UserKey returns the Redis key holding a user's aggregate document.
func UserKey(id string) string {
	return KeyPrefixUser + id
}

// EmailKey returns the uniqueness-index key for an email address.
// Emails are case-insensitive.
func EmailKey(email string) string {
	return KeyPrefixEmail + strings.ToLower(email)
}

// UsernameKey returns the uniqueness-index key for a username.
func UsernameKey(username string) string {
	return KeyPrefixUsername + strings.ToLower(username)
}
