package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// CredentialStore persists user records.
//
// FindByIdentifier returns domain.ErrUserNotFound on a miss. Create must
// enforce identifier uniqueness itself and return
// domain.ErrIdentifierAlreadyExists on collision; the auth service's
// existence check does not close the race between concurrent registrations.
type CredentialStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// PasswordHasher turns plaintext passwords into digests and checks them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
