package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

const (
	defaultMinPasswordLength = 8
	maxIdentifierLength      = 255
)

const dummyPassword = "portfolio-api-dummy-password"

// AuthOptions tunes the registration policy.
type AuthOptions struct {
	// RegistrationSecret gates account creation when non-empty.
	RegistrationSecret string
	// MinPasswordLength defaults to 8.
	MinPasswordLength int
}

// AuthService implements registration, login and logout.
type AuthService struct {
	store    ports.CredentialStore
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	denylist ports.TokenDenylist
	opts     AuthOptions
	log      zerolog.Logger
	now      func() time.Time

	// dummyDigest is made by hasher, so a lookup miss costs the same work as a
	// wrong password at the configured cost.
	dummyDigest string
}

// NewAuthService wires the auth flows. denylist may be nil, in which case
// Logout is a no-op and tokens stay valid until they expire.
func NewAuthService(
	store ports.CredentialStore,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	denylist ports.TokenDenylist,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = defaultMinPasswordLength
	}
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("could not hash dummy password")
	}
	return &AuthService{
		store:       store,
		hasher:      hasher,
		issuer:      issuer,
		denylist:    denylist,
		opts:        opts,
		log:         log,
		now:         time.Now,
		dummyDigest: dummy,
	}
}

// logFor prefers the request-scoped logger carried by ctx.
func (s *AuthService) logFor(ctx context.Context) zerolog.Logger {
	return logger.FromContext(ctx, s.log).With().Str("component", "auth").Logger()
}

// Register checks the registration gate first, then the identifier and
// password rules, then uniqueness.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.opts.RegistrationSecret != "" &&
		subtle.ConstantTimeCompare([]byte(in.RegistrationSecret), []byte(s.opts.RegistrationSecret)) != 1 {
		log := s.logFor(ctx)
		log.Warn().Msg("registration rejected: bad registration secret")
		return nil, domain.ErrInvalidRegistrationSecret
	}

	identifier := domain.NormalizeIdentifier(in.Identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", domain.ErrInvalidInput)
	}
	if len([]rune(identifier)) > maxIdentifierLength {
		return nil, fmt.Errorf("%w: identifier must be at most %d characters", domain.ErrInvalidInput, maxIdentifierLength)
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}

	_, err := s.store.FindByIdentifier(ctx, identifier)
	switch {
	case err == nil:
		return nil, domain.ErrIdentifierAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.store.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Identifier:   identifier,
		PasswordHash: digest,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrIdentifierAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: create: %w", err)
	}

	log := s.logFor(ctx)
	log.Info().Str("user_id", created.ID).Str("identifier", created.Identifier).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	identifier = domain.NormalizeIdentifier(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	log := s.logFor(ctx)
	log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{User: user, Token: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims domain.TokenClaims) error {
	if s.denylist == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("logout: revoke: %w", err)
	}
	log := s.logFor(ctx)
	log.Info().Str("user_id", claims.Subject).Str("token_id", claims.ID).Msg("token revoked")
	return nil
}

func (s *AuthService) checkPassword(password string) error {
	if len([]rune(password)) < s.opts.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.opts.MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}
