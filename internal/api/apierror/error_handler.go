// Package apierror renders every error leaving the HTTP layer as the JSON
// envelope {"error": "<Kind>", "message": "<text>"}.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

// Kind is the stable, machine-readable error code returned to clients.
type Kind string

const (
	KindInvalidInput              Kind = "InvalidInput"
	KindIdentifierAlreadyExists   Kind = "IdentifierAlreadyExists"
	KindInvalidRegistrationSecret Kind = "InvalidRegistrationSecret"
	KindInvalidCredentials        Kind = "InvalidCredentials"
	KindMissingToken              Kind = "MissingToken"
	KindMalformedHeader           Kind = "MalformedHeader"
	KindInvalidSignature          Kind = "InvalidSignature"
	KindTokenMalformed            Kind = "TokenMalformed"
	KindTokenExpired              Kind = "TokenExpired"
	KindTokenRevoked              Kind = "TokenRevoked"
	KindProjectNotFound           Kind = "ProjectNotFound"
	KindNotFound                  Kind = "NotFound"
	KindMethodNotAllowed          Kind = "MethodNotAllowed"
	KindInternalFailure           Kind = "InternalFailure"
)

// Response is the canonical error envelope for all API errors.
type Response struct {
	Error   Kind   `json:"error"`
	Message string `json:"message"`
}

type mapping struct {
	target error
	status int
	kind   Kind
	// message overrides err.Error() when set.
	message string
}

var known = []mapping{
	{domain.ErrInvalidInput, http.StatusBadRequest, KindInvalidInput, ""},
	{domain.ErrIdentifierAlreadyExists, http.StatusBadRequest, KindIdentifierAlreadyExists, "identifier already registered"},
	{domain.ErrInvalidRegistrationSecret, http.StatusForbidden, KindInvalidRegistrationSecret, "invalid registration secret"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials, "invalid credentials"},
	{domain.ErrMissingToken, http.StatusUnauthorized, KindMissingToken, "authorization token required"},
	{domain.ErrMalformedHeader, http.StatusUnauthorized, KindMalformedHeader, "authorization header must be 'Bearer <token>'"},
	{domain.ErrInvalidSignature, http.StatusUnauthorized, KindInvalidSignature, "token signature is invalid"},
	{domain.ErrTokenMalformed, http.StatusUnauthorized, KindTokenMalformed, "token is malformed"},
	{domain.ErrTokenExpired, http.StatusUnauthorized, KindTokenExpired, "token has expired"},
	{domain.ErrTokenRevoked, http.StatusUnauthorized, KindTokenRevoked, "token has been revoked"},
	{domain.ErrProjectNotFound, http.StatusNotFound, KindProjectNotFound, "project not found"},
}

// Resolve maps err to a status code and envelope. The second return value
// reports whether err was recognised; unrecognised errors resolve to a
// generic 500 and should be logged by the caller.
func Resolve(err error) (int, Response, bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, Response{Error: kindForStatus(he.Code), Message: fmt.Sprintf("%v", he.Message)}, true
	}

	for _, m := range known {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return m.status, Response{Error: m.kind, Message: msg}, true
		}
	}

	return http.StatusInternalServerError, Response{Error: KindInternalFailure, Message: "internal server error"}, false
}

// KindOf returns the Kind err resolves to.
func KindOf(err error) Kind {
	_, resp, _ := Resolve(err)
	return resp.Error
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to their status codes, logs unexpected errors without leaking
// details, and writes the Response envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp, ok := Resolve(err)
		if !ok {
			l := logger.FromContext(c.Request().Context(), log)
			l.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return KindInvalidInput
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusMethodNotAllowed:
		return KindMethodNotAllowed
	case http.StatusUnauthorized:
		return KindMissingToken
	}
	if code >= http.StatusInternalServerError {
		return KindInternalFailure
	}
	return Kind(http.StatusText(code))
}
