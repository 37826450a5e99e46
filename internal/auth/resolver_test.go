package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/domain"
)

func TestResolverResolve(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tokens := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(issuedAt))
	token, err := tokens.Issue(5, "a@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	r := NewResolver(tokens)
	identity, err := r.Resolve(BearerToken(token))
	require.NoError(t, err)
	assert.Equal(t, domain.AuthIdentity{ID: 5, Email: "a@example.com", Role: domain.RoleAdmin}, identity)
}

func TestResolverRejects(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tokens := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(issuedAt))
	token, err := tokens.Issue(5, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name   string
		r      *Resolver
		header string
		cause  error
	}{
		{"missing header", NewResolver(tokens), "", nil},
		{"blank header", NewResolver(tokens), "   ", nil},
		{"no scheme", NewResolver(tokens), token, ErrTokenInvalid},
		{"wrong scheme", NewResolver(tokens), "Basic " + token, ErrTokenInvalid},
		{"prefix only", NewResolver(tokens), "Bearer ", ErrTokenInvalid},
		{"garbage token", NewResolver(tokens), "Bearer abc.def.ghi", ErrTokenInvalid},
		{
			"expired",
			NewResolver(tokens.WithClock(fixedClock(issuedAt.Add(2 * time.Hour)))),
			BearerToken(token),
			ErrTokenExpired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.r.Resolve(tt.header)
			require.Error(t, err)
			assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}
