package ports

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (domain.IssuedToken, error)
}

// TokenVerifier validates a bearer token and returns its claims. Failures are
// domain.ErrInvalidSignature, domain.ErrTokenMalformed or
// domain.ErrTokenExpired; anything else is an internal fault.
type TokenVerifier interface {
	Verify(token string) (domain.TokenClaims, error)
}

// TokenDenylist records revoked token IDs until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
