package service

import (
	"context"
	"fmt"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
)

// UserAdminService and CommentAdminService hold the privileged operations.
// They do not check roles themselves; the router puts them behind the
// audited ADMIN gate.

type UserAdminService interface {
	ChangeUserRole(ctx context.Context, userID uint, req UserRoleChangeRequest) error
}

type userAdminService struct {
	store repository.Store
}

func NewUserAdminService(store repository.Store) UserAdminService {
	return &userAdminService{store: store}
}

func (s *userAdminService) ChangeUserRole(ctx context.Context, userID uint, req UserRoleChangeRequest) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		role, ok := domain.ParseUserRole(req.Role)
		if !ok {
			return apperror.InvalidRequest(msgInvalidUserRole)
		}
		user.Role = role
		if err := tx.Users().Update(user); err != nil {
			return fmt.Errorf("update user %d: %w", userID, err)
		}
		return nil
	})
}

type CommentAdminService interface {
	// DeleteComment removes the comment. Deleting a missing comment succeeds.
	DeleteComment(ctx context.Context, commentID uint) error
}

type commentAdminService struct {
	store repository.Store
}

func NewCommentAdminService(store repository.Store) CommentAdminService {
	return &commentAdminService{store: store}
}

func (s *commentAdminService) DeleteComment(ctx context.Context, commentID uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Comments().DeleteByID(commentID)
	})
}
