package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/api/handler"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/infrastructure/token"
)

type stubVerifier struct {
	claims domain.TokenClaims
	err    error
}

func (s stubVerifier) Verify(string) (domain.TokenClaims, error) { return s.claims, s.err }

type stubDenylist struct {
	revoked map[string]bool
	err     error
}

func (d stubDenylist) Revoke(context.Context, string, time.Duration) error { return nil }

func (d stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	return d.revoked[id], d.err
}

func newIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	iss, err := token.NewIssuer(token.Config{Secret: []byte("secret"), TTL: time.Hour})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return iss
}

// run executes mw against a request carrying the given Authorization header
// and reports whether next was reached, its subject, and the returned error.
func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (called bool, subject string, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	err = mw(func(c echo.Context) error {
		called = true
		subject, _ = handler.Subject(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return called, subject, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	iss := newIssuer(t)
	tok, err := iss.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, header := range []string{"Bearer " + tok.Value, "bearer " + tok.Value, tok.Value} {
		called, subject, err := run(t, Auth(iss), header)
		if err != nil {
			t.Fatalf("header %q: unexpected error %v", header, err)
		}
		if !called || subject != "user-1" {
			t.Fatalf("header %q: expected next with subject user-1, got called=%v subject=%q", header, called, subject)
		}
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	for _, header := range []string{"", "   "} {
		called, _, err := run(t, Auth(newIssuer(t)), header)
		if !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
		if called {
			t.Fatalf("next should not be called")
		}
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "Bearer a b", "Token abc"} {
		called, _, err := run(t, Auth(newIssuer(t)), header)
		if !errors.Is(err, domain.ErrMalformedHeader) {
			t.Fatalf("header %q: expected ErrMalformedHeader, got %v", header, err)
		}
		if called {
			t.Fatalf("next should not be called")
		}
	}
}

func TestAuthMiddleware_TokenRejections(t *testing.T) {
	cases := map[string]error{
		"signature": domain.ErrInvalidSignature,
		"malformed": domain.ErrTokenMalformed,
		"expired":   domain.ErrTokenExpired,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			called, _, err := run(t, Auth(stubVerifier{err: want}), "Bearer x.y.z")
			if !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
			if called {
				t.Fatalf("next should not be called")
			}
		})
	}
}

func TestAuthMiddleware_TamperedToken(t *testing.T) {
	iss := newIssuer(t)
	tok, _ := iss.Issue("user-1")
	tampered := []byte(tok.Value)
	i := len(tampered) - 10
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}

	_, _, err := run(t, Auth(iss), "Bearer "+string(tampered))
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestAuthMiddleware_VerifierFault(t *testing.T) {
	_, _, err := run(t, Auth(stubVerifier{err: errors.New("kms unavailable")}), "Bearer x.y.z")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrInvalidSignature) || errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("fault must not be reported as a token rejection: %v", err)
	}
}

func TestAuthMiddleware_Denylist(t *testing.T) {
	verifier := stubVerifier{claims: domain.TokenClaims{Subject: "user-1", ID: "jti-1"}}

	called, _, err := run(t, Auth(verifier, WithDenylist(stubDenylist{revoked: map[string]bool{"jti-1": true}})), "Bearer tok")
	if !errors.Is(err, domain.ErrTokenRevoked) || called {
		t.Fatalf("expected ErrTokenRevoked without calling next, got %v called=%v", err, called)
	}

	called, _, err = run(t, Auth(verifier, WithDenylist(stubDenylist{})), "Bearer tok")
	if err != nil || !called {
		t.Fatalf("expected pass-through, got %v called=%v", err, called)
	}

	_, _, err = run(t, Auth(verifier, WithDenylist(stubDenylist{err: errors.New("redis down")})), "Bearer tok")
	if err == nil || errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}
