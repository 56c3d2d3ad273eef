package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrInvalidRegistrationSecret = errors.New("invalid registration secret")
	ErrIdentifierAlreadyExists   = errors.New("identifier already exists")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	// ErrUserNotFound is returned by credential stores on a lookup miss. The
	// auth service never lets it reach a client.
	ErrUserNotFound = errors.New("user not found")
)

// User is a registered account. PasswordHash holds the bcrypt digest and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Identifier   string    `json:"identifier"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeIdentifier applies the identifier policy: surrounding whitespace is
// dropped and the value is lower-cased, so lookups are case-insensitive.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
