package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// Keys under which the Auth middleware stores the verified identity.
const (
	ContextKeySubject = "auth.subject"
	ContextKeyClaims  = "auth.claims"
)

// Subject returns the authenticated user ID. Presence proves the Auth
// middleware ran; handlers behind it fail fast with MissingToken otherwise.
func Subject(c echo.Context) (string, error) {
	sub, _ := c.Get(ContextKeySubject).(string)
	if sub == "" {
		return "", domain.ErrMissingToken
	}
	return sub, nil
}

// Claims returns the verified token claims set by the Auth middleware.
func Claims(c echo.Context) (domain.TokenClaims, error) {
	claims, ok := c.Get(ContextKeyClaims).(domain.TokenClaims)
	if !ok || claims.Subject == "" {
		return domain.TokenClaims{}, domain.ErrMissingToken
	}
	return claims, nil
}

// SetIdentity stores the verified claims on the request context.
func SetIdentity(c echo.Context, claims domain.TokenClaims) {
	c.Set(ContextKeySubject, claims.Subject)
	c.Set(ContextKeyClaims, claims)
}
