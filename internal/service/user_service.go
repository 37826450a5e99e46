package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
)

const minPasswordLength = 8

type UserService interface {
	GetUser(ctx context.Context, userID uint) (*UserResponse, error)
	// ChangePassword replaces the user's password after checking the old one.
	ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error
}

type userService struct {
	store  repository.Store
	hasher auth.PasswordHasher
}

func NewUserService(store repository.Store, hasher auth.PasswordHasher) UserService {
	return &userService{store: store, hasher: hasher}
}

func findUser(tx repository.Store, userID uint) (*domain.User, error) {
	user, err := tx.Users().FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.InvalidRequest(msgUserNotFound)
		}
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID uint) (*UserResponse, error) {
	var user *domain.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = findUser(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := toUserResponse(*user)
	return &response, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error {
	if !isStrongPassword(req.NewPassword) {
		return apperror.InvalidRequest(msgWeakPassword)
	}

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		if req.OldPassword == req.NewPassword {
			return apperror.InvalidRequest(msgPasswordUnchanged)
		}
		if !s.hasher.Verify(req.OldPassword, user.Password) {
			return apperror.Auth(msgWrongPassword)
		}

		digest, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = digest
		return tx.Users().Update(user)
	})
}

// isStrongPassword requires at least 8 characters including an ASCII digit
// and an ASCII uppercase letter.
func isStrongPassword(p string) bool {
	if len([]rune(p)) < minPasswordLength {
		return false
	}
	var digit, upper bool
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	return digit && upper
}
