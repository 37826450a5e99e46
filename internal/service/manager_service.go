package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
)

// ManagerService maintains the collaborators of a todo. Only the todo's owner
// may change the list and the owner can never be their own manager.
type ManagerService interface {
	SaveManager(ctx context.Context, identity domain.AuthIdentity, todoID uint, req ManagerSaveRequest) (*ManagerSaveResponse, error)
	GetManagers(ctx context.Context, todoID uint) ([]ManagerResponse, error)
	// DeleteManager removes managerID from todoID on behalf of identity.
	DeleteManager(ctx context.Context, identity domain.AuthIdentity, todoID, managerID uint) error
}

type managerService struct {
	store repository.Store
}

func NewManagerService(store repository.Store) ManagerService {
	return &managerService{store: store}
}

func findTodo(tx repository.Store, todoID uint) (*domain.Todo, error) {
	todo, err := tx.Todos().FindByIDWithUser(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.InvalidRequest(msgTodoNotFound)
		}
		return nil, fmt.Errorf("find todo %d: %w", todoID, err)
	}
	return todo, nil
}

func (s *managerService) SaveManager(ctx context.Context, identity domain.AuthIdentity, todoID uint, req ManagerSaveRequest) (*ManagerSaveResponse, error) {
	var manager *domain.Manager
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		todo, err := findTodo(tx, todoID)
		if err != nil {
			return err
		}
		if !todo.OwnedBy(identity.ID) {
			return apperror.InvalidRequest(msgOwnerOnlyAssign)
		}

		target, err := tx.Users().FindByID(req.ManagerUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidRequest(msgManagerUserNotFound)
			}
			return fmt.Errorf("find manager user: %w", err)
		}
		if todo.OwnedBy(target.ID) {
			return apperror.InvalidRequest(msgSelfAssignment)
		}

		exists, err := tx.Managers().ExistsByTodoIDAndUserID(todo.ID, target.ID)
		if err != nil {
			return fmt.Errorf("check manager: %w", err)
		}
		if exists {
			return apperror.InvalidRequest(msgAlreadyManager)
		}

		manager = domain.NewManager(todo, *target)
		if err := tx.Managers().Create(manager); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.InvalidRequest(msgAlreadyManager)
			}
			return fmt.Errorf("create manager: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ManagerSaveResponse{ID: manager.ID, User: toUserResponse(manager.User)}, nil
}

func (s *managerService) GetManagers(ctx context.Context, todoID uint) ([]ManagerResponse, error) {
	var managers []domain.Manager
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := findTodo(tx, todoID); err != nil {
			return err
		}
		var err error
		managers, err = tx.Managers().FindAllByTodoID(todoID)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ManagerResponse, 0, len(managers))
	for _, m := range managers {
		responses = append(responses, ManagerResponse{ID: m.ID, User: toUserResponse(m.User)})
	}
	return responses, nil
}

func (s *managerService) DeleteManager(ctx context.Context, identity domain.AuthIdentity, todoID, managerID uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		todo, err := findTodo(tx, todoID)
		if err != nil {
			return err
		}
		if !todo.OwnedBy(identity.ID) {
			return apperror.InvalidRequest(msgOwnerOnlyRemove)
		}

		manager, err := tx.Managers().FindByID(managerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidRequest(msgManagerNotFound)
			}
			return fmt.Errorf("find manager %d: %w", managerID, err)
		}
		if manager.TodoID != todo.ID {
			return apperror.InvalidRequest(msgManagerNotInTodo)
		}

		return tx.Managers().Delete(manager)
	})
}
