package ports

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Identifier         string
	Password           string
	RegistrationSecret string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims domain.TokenClaims) error
}
