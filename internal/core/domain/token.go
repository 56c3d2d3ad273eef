package domain

import (
	"errors"
	"time"
)

var (
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedHeader  = errors.New("malformed authorization header")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenRevoked     = errors.New("token revoked")
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject   string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken is a freshly signed bearer token.
type IssuedToken struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}
