package domain

import "time"

// Manager links a collaborating user to a todo. A user appears at most once
// per todo.
type Manager struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	TodoID    uint `gorm:"not null;uniqueIndex:idx_managers_todo_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_managers_todo_user"`
	Todo      Todo `gorm:"constraint:OnDelete:CASCADE"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
}

func NewManager(todo *Todo, user User) *Manager {
	return &Manager{
		TodoID: todo.ID,
		UserID: user.ID,
		User:   user,
	}
}
