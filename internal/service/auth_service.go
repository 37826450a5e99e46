package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
)

// TokenIssuer is the part of the token service that sign-up and sign-in need.
type TokenIssuer interface {
	Issue(userID uint, email string, role domain.UserRole) (string, error)
}

// AuthService handles account creation and credential checks.
type AuthService interface {
	// Signup registers a new user and returns a bearer token for it.
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	// Signin checks the credentials and returns a bearer token.
	Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error)
}

type authService struct {
	store  repository.Store
	hasher auth.PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(store repository.Store, hasher auth.PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{store: store, hasher: hasher, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, apperror.InvalidRequest(msgEmailRequired)
	}

	var token string
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		exists, err := tx.Users().ExistsByEmail(email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return apperror.InvalidRequest(msgEmailExists)
		}

		role, ok := domain.ParseUserRole(req.UserRole)
		if !ok {
			return apperror.InvalidRequest(msgInvalidUserRole)
		}

		digest, err := s.hasher.Hash(req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := &domain.User{Email: email, Password: digest, Role: role}
		if err := tx.Users().Create(user); err != nil {
			// lost a race with a concurrent sign-up for the same email
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.InvalidRequest(msgEmailExists)
			}
			return fmt.Errorf("create user: %w", err)
		}

		token, err = s.tokens.Issue(user.ID, user.Email, user.Role)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SignupResponse{BearerToken: auth.BearerToken(token)}, nil
}

func (s *authService) Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error) {
	var token string
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByEmail(strings.TrimSpace(req.Email))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidRequest(msgUserNotRegistered)
			}
			return fmt.Errorf("find user: %w", err)
		}

		if !s.hasher.Verify(req.Password, user.Password) {
			return apperror.Auth(msgWrongPassword)
		}

		token, err = s.tokens.Issue(user.ID, user.Email, user.Role)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SigninResponse{BearerToken: auth.BearerToken(token)}, nil
}
