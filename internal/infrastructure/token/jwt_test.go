package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

var testSecret = []byte("test-signing-secret")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestIssuer(t *testing.T, clock *fakeClock) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{Secret: testSecret, TTL: time.Hour, Issuer: "portfolio-api"}, WithClock(clock.Now))
	require.NoError(t, err)
	return iss
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer(Config{})
	require.Error(t, err)
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	iss, err := NewIssuer(Config{Secret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, iss.TTL())
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	iss := newTestIssuer(t, clock)

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.ID)
	assert.WithinDuration(t, clock.t.Add(time.Hour), tok.ExpiresAt, 0)

	claims, err := iss.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, tok.ID, claims.ID)
	assert.WithinDuration(t, clock.t, claims.IssuedAt, 0)
	assert.WithinDuration(t, tok.ExpiresAt, claims.ExpiresAt, 0)
}

func TestIssue_UniqueIDs(t *testing.T) {
	iss := newTestIssuer(t, &fakeClock{t: time.Now()})
	a, err := iss.Issue("user-1")
	require.NoError(t, err)
	b, err := iss.Issue("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestIssue_EmptySubject(t *testing.T) {
	iss := newTestIssuer(t, &fakeClock{t: time.Now()})
	_, err := iss.Issue("")
	require.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	iss := newTestIssuer(t, clock)

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	_, err = iss.Verify(tok.Value)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	iss := newTestIssuer(t, clock)

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = iss.Verify(tok.Value)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerify_TamperedSignature(t *testing.T) {
	iss := newTestIssuer(t, &fakeClock{t: time.Now()})
	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(tok.Value, ".")
	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = iss.Verify(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestVerify_TamperedPayload(t *testing.T) {
	iss := newTestIssuer(t, &fakeClock{t: time.Now()})
	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	other, err := iss.Issue("user-2")
	require.NoError(t, err)

	a := strings.Split(tok.Value, ".")
	b := strings.Split(other.Value, ".")
	spliced := a[0] + "." + b[1] + "." + a[2]

	_, err = iss.Verify(spliced)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestVerify_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)
	other, err := NewIssuer(Config{Secret: []byte("another-secret"), TTL: time.Hour}, WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = iss.Verify(tok.Value)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	iss := newTestIssuer(t, &fakeClock{t: time.Now()})

	for _, in := range []string{"", "not-a-token", "a.b"} {
		_, err := iss.Verify(in)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, "input %q", in)
	}
}

func TestVerify_MissingClaims(t *testing.T) {
	now := time.Now()
	iss := newTestIssuer(t, &fakeClock{t: now})

	cases := map[string]jwt.RegisteredClaims{
		"no subject": {
			ID:        "jti",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		"no expiry": {
			Subject:  "user-1",
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
			require.NoError(t, err)

			_, err = iss.Verify(signed)
			assert.ErrorIs(t, err, domain.ErrTokenMalformed)
		})
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	iss := newTestIssuer(t, &fakeClock{t: now})
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = iss.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}
