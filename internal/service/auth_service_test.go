package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
)

func TestSignupSuccess(t *testing.T) {
	store := repository.NewMemoryStore()
	tokens := newTokens()
	svc := NewAuthService(store, newHasher(), tokens)

	resp, err := svc.Signup(context.Background(), SignupRequest{Email: "test@example.com", Password: "1234", UserRole: "USER"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.BearerToken, auth.BearerPrefix))

	identity, err := auth.NewResolver(tokens).Resolve(resp.BearerToken)
	require.NoError(t, err)

	var stored *domain.User
	require.NoError(t, store.Transaction(context.Background(), func(tx repository.Store) error {
		var err error
		stored, err = tx.Users().FindByEmail("test@example.com")
		return err
	}))
	assert.Equal(t, stored.ID, identity.ID)
	assert.Equal(t, "test@example.com", identity.Email)
	assert.Equal(t, domain.RoleUser, identity.Role)
	assert.NotEqual(t, "1234", stored.Password)
	assert.True(t, newHasher().Verify("1234", stored.Password))
}

func TestSignupAdminRole(t *testing.T) {
	tokens := newTokens()
	svc := NewAuthService(repository.NewMemoryStore(), newHasher(), tokens)

	resp, err := svc.Signup(context.Background(), SignupRequest{Email: "admin@example.com", Password: "pw", UserRole: "admin"})
	require.NoError(t, err)

	identity, err := auth.NewResolver(tokens).Resolve(resp.BearerToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestSignupEmptyEmailFailsBeforeStorage(t *testing.T) {
	for _, email := range []string{"", "   "} {
		store := &countingStore{Store: repository.NewMemoryStore()}
		svc := NewAuthService(store, newHasher(), newTokens())

		_, err := svc.Signup(context.Background(), SignupRequest{Email: email, Password: "1234", UserRole: "USER"})
		requireAppError(t, err, apperror.KindInvalidRequest, "이메일이 입력되지 않았습니다.")
		assert.Zero(t, store.transactions)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := repository.NewMemoryStore()
	seedUser(t, store, "kty1467@naver.com", "1234", domain.RoleUser)
	svc := NewAuthService(store, newHasher(), newTokens())

	for _, password := range []string{"1234", "different", ""} {
		_, err := svc.Signup(context.Background(), SignupRequest{Email: "kty1467@naver.com", Password: password, UserRole: "USER"})
		requireAppError(t, err, apperror.KindInvalidRequest, "이미 존재하는 이메일입니다.")
	}
}

func TestSignupInvalidRole(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryStore(), newHasher(), newTokens())

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "a@example.com", Password: "1234", UserRole: "ROOT"})
	requireAppError(t, err, apperror.KindInvalidRequest, "유효하지 않은 UserRole")
}

func TestSigninSuccess(t *testing.T) {
	store := repository.NewMemoryStore()
	user := seedUser(t, store, "kty1467@naver.com", "1234", domain.RoleUser)
	tokens := newTokens()
	svc := NewAuthService(store, newHasher(), tokens)

	resp, err := svc.Signin(context.Background(), SigninRequest{Email: "kty1467@naver.com", Password: "1234"})
	require.NoError(t, err)

	identity, err := auth.NewResolver(tokens).Resolve(resp.BearerToken)
	require.NoError(t, err)
	assert.Equal(t, identityOf(user), identity)
}

func TestSigninNotRegisteredAndWrongPasswordAreDistinct(t *testing.T) {
	store := repository.NewMemoryStore()
	seedUser(t, store, "test@example.com", "1234", domain.RoleUser)
	svc := NewAuthService(store, newHasher(), newTokens())

	_, err := svc.Signin(context.Background(), SigninRequest{Email: "notUser@example.com", Password: "1234"})
	requireAppError(t, err, apperror.KindInvalidRequest, "가입되지 않은 유저입니다.")

	_, err = svc.Signin(context.Background(), SigninRequest{Email: "test@example.com", Password: "12345"})
	requireAppError(t, err, apperror.KindAuth, "잘못된 비밀번호입니다.")
}

func TestSignupLosingDuplicateRace(t *testing.T) {
	svc := NewAuthService(duplicateRaceStore{repository.NewMemoryStore()}, newHasher(), newTokens())

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "test@example.com", Password: "1234", UserRole: "USER"})
	requireAppError(t, err, apperror.KindInvalidRequest, "이미 존재하는 이메일입니다.")
}
