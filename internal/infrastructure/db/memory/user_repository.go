// Package memory holds process-local stores used for development, tests and
// single-instance deployments.
package memory

import (
	"context"
	"sync"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// UserRepository is a map-backed credential store. Identifiers are unique
// under the write lock, which closes the check-then-create race between
// concurrent registrations.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[domain.NormalizeIdentifier(identifier)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	key := domain.NormalizeIdentifier(user.Identifier)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[key]; exists {
		return nil, domain.ErrIdentifierAlreadyExists
	}
	stored := *user
	stored.Identifier = key
	r.users[key] = &stored

	out := stored
	return &out, nil
}

// Ping always succeeds.
func (r *UserRepository) Ping(context.Context) error { return nil }
