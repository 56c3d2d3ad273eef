// Package token issues and verifies the HS256 bearer tokens handed out at
// login.
//
// Tokens carry the subject (user ID), issued-at, expiry and a random token ID.
// There is no server-side session: a token stays valid until it expires unless
// its ID is placed on a denylist by the caller.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

var errEmptySecret = errors.New("token: signing secret must not be empty")

// Config holds the process-wide signing settings, loaded once at startup.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Issuer signs and verifies tokens with a single shared secret. Rotating the
// secret invalidates every outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option customises an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer returns an Issuer. TTL defaults to DefaultTTL.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errEmptySecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	iss := &Issuer{
		secret: append([]byte(nil), cfg.Secret...),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(iss)
	}
	return iss, nil
}

// TTL reports the validity window of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for subject expiring TTL from now.
func (i *Issuer) Issue(subject string) (domain.IssuedToken, error) {
	if subject == "" {
		return domain.IssuedToken{}, errors.New("token: subject must not be empty")
	}
	now := i.now()
	claims := jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("token: sign: %w", err)
	}
	return domain.IssuedToken{
		Value:     signed,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks signature, structure and expiry, in that order, and returns
// the embedded claims.
func (i *Issuer) Verify(tokenString string) (domain.TokenClaims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	sig, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	if err != nil || len(sig) == 0 {
		return domain.TokenClaims{}, domain.ErrInvalidSignature
	}
	// The MAC covers header and payload, so any edit to either lands here
	// before claims are decoded.
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, i.secret); err != nil {
		return domain.TokenClaims{}, domain.ErrInvalidSignature
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.TokenClaims{}, classify(err)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	// jwt treats exp == now as still valid; expiry must be strictly in the future.
	if !claims.ExpiresAt.Time.After(i.now()) {
		return domain.TokenClaims{}, domain.ErrTokenExpired
	}

	out := domain.TokenClaims{
		Subject:   claims.Subject,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

func (i *Issuer) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return i.secret, nil
}

// classify maps jwt parse errors onto the domain token errors. The signature
// is checked before claims, so a tampered expired token reports a bad
// signature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return domain.ErrTokenMalformed
	}
	return fmt.Errorf("token: verify: %w", err)
}
