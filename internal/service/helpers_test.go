package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// countingStore records how many transactions were opened.
type countingStore struct {
	repository.Store
	transactions int
}

func (s *countingStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.transactions++
	return s.Store.Transaction(ctx, fn)
}

// duplicateRaceStore reports every key as free but fails user and manager
// inserts with a unique violation, as when a concurrent transaction commits
// the same key first.
type duplicateRaceStore struct {
	repository.Store
}

func (s duplicateRaceStore) Users() repository.UserRepository {
	return racedUsers{s.Store.Users()}
}

func (s duplicateRaceStore) Managers() repository.ManagerRepository {
	return racedManagers{s.Store.Managers()}
}

func (s duplicateRaceStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(duplicateRaceStore{tx})
	})
}

type racedUsers struct {
	repository.UserRepository
}

func (racedUsers) ExistsByEmail(email string) (bool, error) { return false, nil }
func (racedUsers) Create(user *domain.User) error           { return gorm.ErrDuplicatedKey }

type racedManagers struct {
	repository.ManagerRepository
}

func (racedManagers) ExistsByTodoIDAndUserID(todoID, userID uint) (bool, error) { return false, nil }
func (racedManagers) Create(manager *domain.Manager) error                      { return gorm.ErrDuplicatedKey }

type stubWeather struct {
	weather string
	err     error
	calls   int
}

func (w *stubWeather) TodayWeather(ctx context.Context) (string, error) {
	w.calls++
	return w.weather, w.err
}

func newHasher() auth.PasswordHasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}

func newTokens() *auth.TokenService {
	return auth.NewTokenService(testSecret, time.Hour)
}

func seedUser(t *testing.T, store repository.Store, email, password string, role domain.UserRole) domain.User {
	t.Helper()
	digest, err := newHasher().Hash(password)
	require.NoError(t, err)
	u := domain.User{Email: email, Password: digest, Role: role}
	require.NoError(t, store.Transaction(context.Background(), func(tx repository.Store) error {
		return tx.Users().Create(&u)
	}))
	return u
}

func seedTodo(t *testing.T, store repository.Store, owner domain.User, title string) *domain.Todo {
	t.Helper()
	todo := domain.NewTodo(title, "contents of "+title, "Sunny", owner)
	require.NoError(t, store.Transaction(context.Background(), func(tx repository.Store) error {
		return tx.Todos().Create(todo)
	}))
	return todo
}

func identityOf(u domain.User) domain.AuthIdentity {
	return domain.AuthIdentity{ID: u.ID, Email: u.Email, Role: u.Role}
}

func requireAppError(t *testing.T, err error, kind apperror.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperror.KindOf(err), "unexpected kind for %v", err)
	require.Equal(t, msg, err.Error())
}
