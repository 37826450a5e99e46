package repository

import (
	"github.com/Tomlord1122/todo-expert/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ManagerRepository interface {
	// Create fails with gorm.ErrDuplicatedKey when the user already manages
	// the todo.
	Create(manager *domain.Manager) error
	FindByID(id uint) (*domain.Manager, error)
	// FindAllByTodoID returns the todo's managers with their users, oldest
	// assignment first.
	FindAllByTodoID(todoID uint) ([]domain.Manager, error)
	ExistsByTodoIDAndUserID(todoID, userID uint) (bool, error)
	Delete(manager *domain.Manager) error
}

type gormManagerRepository struct {
	db *gorm.DB
}

func NewGormManagerRepository(db *gorm.DB) ManagerRepository {
	return &gormManagerRepository{db: db}
}

func (r *gormManagerRepository) Create(manager *domain.Manager) error {
	return r.db.Omit(clause.Associations).Create(manager).Error
}

func (r *gormManagerRepository) FindByID(id uint) (*domain.Manager, error) {
	var manager domain.Manager
	if err := r.db.Preload("User").First(&manager, id).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *gormManagerRepository) FindAllByTodoID(todoID uint) ([]domain.Manager, error) {
	var managers []domain.Manager
	result := r.db.Preload("User").
		Where("todo_id = ?", todoID).
		Order("id ASC").
		Find(&managers)
	if result.Error != nil {
		return nil, result.Error
	}
	return managers, nil
}

func (r *gormManagerRepository) ExistsByTodoIDAndUserID(todoID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Manager{}).
		Where("todo_id = ? AND user_id = ?", todoID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormManagerRepository) Delete(manager *domain.Manager) error {
	return r.db.Delete(&domain.Manager{}, manager.ID).Error
}
