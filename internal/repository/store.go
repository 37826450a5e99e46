package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the per-entity repositories and the transaction boundary.
// Repositories returned from the Store passed to a Transaction callback run
// inside that transaction.
type Store interface {
	Users() UserRepository
	Todos() TodoRepository
	Managers() ManagerRepository
	Comments() CommentRepository

	// Transaction runs fn atomically. Any error returned by fn rolls back
	// every write made through the callback's Store.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// gormStore implements Store on top of a *gorm.DB.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by GORM.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository       { return NewGormUserRepository(s.db) }
func (s *gormStore) Todos() TodoRepository       { return NewGormTodoRepository(s.db) }
func (s *gormStore) Managers() ManagerRepository { return NewGormManagerRepository(s.db) }
func (s *gormStore) Comments() CommentRepository { return NewGormCommentRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
