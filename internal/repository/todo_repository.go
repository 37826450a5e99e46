package repository

import (
	"github.com/Tomlord1122/todo-expert/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	Create(todo *domain.Todo) error
	// FindByIDWithUser loads the todo together with its owner.
	FindByIDWithUser(id uint) (*domain.Todo, error)
	// FindPage returns todos ordered by most recent modification first and
	// the total number of todos.
	FindPage(offset, limit int) ([]domain.Todo, int64, error)
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

// Create inserts the todo without touching the owner row.
func (r *gormTodoRepository) Create(todo *domain.Todo) error {
	return r.db.Omit(clause.Associations).Create(todo).Error
}

func (r *gormTodoRepository) FindByIDWithUser(id uint) (*domain.Todo, error) {
	var todo domain.Todo
	result := r.db.Preload("User").First(&todo, id)
	if result.Error != nil {
		// gorm.ErrRecordNotFound is passed through for the service to map
		return nil, result.Error
	}
	return &todo, nil
}

func (r *gormTodoRepository) FindPage(offset, limit int) ([]domain.Todo, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Todo{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []domain.Todo
	result := r.db.Preload("User").
		Order("updated_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&todos)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return todos, total, nil
}
