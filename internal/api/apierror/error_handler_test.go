package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   Kind
	}{
		{"invalid input", fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest, KindInvalidInput},
		{"duplicate", domain.ErrIdentifierAlreadyExists, http.StatusBadRequest, KindIdentifierAlreadyExists},
		{"registration secret", domain.ErrInvalidRegistrationSecret, http.StatusForbidden, KindInvalidRegistrationSecret},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials},
		{"missing token", domain.ErrMissingToken, http.StatusUnauthorized, KindMissingToken},
		{"malformed header", domain.ErrMalformedHeader, http.StatusUnauthorized, KindMalformedHeader},
		{"signature", domain.ErrInvalidSignature, http.StatusUnauthorized, KindInvalidSignature},
		{"malformed token", domain.ErrTokenMalformed, http.StatusUnauthorized, KindTokenMalformed},
		{"expired", domain.ErrTokenExpired, http.StatusUnauthorized, KindTokenExpired},
		{"revoked", domain.ErrTokenRevoked, http.StatusUnauthorized, KindTokenRevoked},
		{"project", fmt.Errorf("update: %w", domain.ErrProjectNotFound), http.StatusNotFound, KindProjectNotFound},
		{"route", echo.ErrNotFound, http.StatusNotFound, KindNotFound},
		{"method", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, KindMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, KindInternalFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp, _ := Resolve(tc.err)
			if status != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, status)
			}
			if resp.Error != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, resp.Error)
			}
			if resp.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestResolve_InvalidInputKeepsDetail(t *testing.T) {
	_, resp, _ := Resolve(fmt.Errorf("%w: name is required", domain.ErrInvalidInput))
	if resp.Message != "invalid input: name is required" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestHTTPErrorHandler_HidesInternalCause(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("mongo: connection refused at 10.0.0.3"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != KindInternalFailure || body.Message != "internal server error" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHTTPErrorHandler_DomainError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrInvalidCredentials, c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != KindInvalidCredentials {
		t.Fatalf("expected InvalidCredentials, got %s", body.Error)
	}
}
