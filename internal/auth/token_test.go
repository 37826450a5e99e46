package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-expert/internal/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenRoundTrip(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(issuedAt))

	tests := []struct {
		id    uint
		email string
		role  domain.UserRole
	}{
		{1, "a@example.com", domain.RoleUser},
		{3, "admin@example.com", domain.RoleAdmin},
		{18446744073, "big@example.com", domain.RoleUser},
	}
	for _, tt := range tests {
		token, err := svc.Issue(tt.id, tt.email, tt.role)
		require.NoError(t, err)

		got, err := svc.WithClock(fixedClock(issuedAt.Add(59 * time.Minute))).Parse(token)
		require.NoError(t, err)
		assert.Equal(t, domain.AuthIdentity{ID: tt.id, Email: tt.email, Role: tt.role}, got)
	}
}

func TestTokenSubjectIsDecimalUserID(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, err := svc.Issue(42, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenExpired(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(issuedAt))

	token, err := svc.Issue(7, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second))).Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenInvalid(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, err := svc.Issue(7, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	other := NewTokenService([]byte("another-secret-another-secret-xx"), time.Hour)
	foreign, err := other.Issue(7, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "seven",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(testSecret)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(testSecret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "USER",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
	}).SignedString(testSecret)
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":      "not-a-token",
		"empty":          "",
		"foreign key":    foreign,
		"tampered":       tampered,
		"alg none":       none,
		"bad subject":    badSubject,
		"unknown role":   badRole,
		"missing expiry": noExpiry,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Parse(tok)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestNewTokenServiceDefaultsTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenService(testSecret, 0).ttl)
}
