package repository

import (
	"github.com/Tomlord1122/todo-expert/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByID(id uint) (*domain.Comment, error)
	// DeleteByID is a no-op when the comment does not exist.
	DeleteByID(id uint) error
}

type gormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(comment *domain.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *gormCommentRepository) FindByID(id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *gormCommentRepository) DeleteByID(id uint) error {
	return r.db.Delete(&domain.Comment{}, id).Error
}
