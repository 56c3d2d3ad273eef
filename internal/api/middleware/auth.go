package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/api/apierror"
	"github.com/devfolio/portfolio-api/internal/api/handler"
	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

const bearerScheme = "bearer"

type authConfig struct {
	denylist ports.TokenDenylist
}

// AuthOption customises Auth.
type AuthOption func(*authConfig)

// WithDenylist rejects tokens whose ID has been revoked.
func WithDenylist(d ports.TokenDenylist) AuthOption {
	return func(cfg *authConfig) { cfg.denylist = d }
}

// Auth validates the bearer token and injects the verified identity into the
// context. Rejections are returned as domain errors for the central error
// handler; faults in the verifier or denylist surface as internal errors.
func Auth(verifier ports.TokenVerifier, opts ...AuthOption) echo.MiddlewareFunc {
	var cfg authConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return reject(err)
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				if isTokenRejection(err) {
					return reject(err)
				}
				return fmt.Errorf("verify token: %w", err)
			}

			if cfg.denylist != nil && claims.ID != "" {
				revoked, err := cfg.denylist.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					return fmt.Errorf("check denylist: %w", err)
				}
				if revoked {
					return reject(domain.ErrTokenRevoked)
				}
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			handler.SetIdentity(c, claims)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. A lone
// value is accepted as a bare token; two values need the Bearer scheme.
func bearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	switch len(parts) {
	case 0:
		return "", domain.ErrMissingToken
	case 1:
		if strings.EqualFold(parts[0], bearerScheme) {
			return "", domain.ErrMalformedHeader
		}
		return parts[0], nil
	case 2:
		if !strings.EqualFold(parts[0], bearerScheme) {
			return "", domain.ErrMalformedHeader
		}
		return parts[1], nil
	}
	return "", domain.ErrMalformedHeader
}

func isTokenRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidSignature) ||
		errors.Is(err, domain.ErrTokenMalformed) ||
		errors.Is(err, domain.ErrTokenExpired)
}

func reject(err error) error {
	metrics.TokenVerificationsTotal.WithLabelValues(string(apierror.KindOf(err))).Inc()
	return err
}
