package domain

import "gorm.io/gorm"

// Todo is owned by the user who created it. Weather is captured once at
// creation and never refreshed.
type Todo struct {
	gorm.Model
	Title    string `gorm:"not null"`
	Contents string `gorm:"not null"`
	Weather  string `gorm:"not null"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"constraint:OnDelete:CASCADE"`
}

func NewTodo(title, contents, weather string, owner User) *Todo {
	return &Todo{
		Title:    title,
		Contents: contents,
		Weather:  weather,
		UserID:   owner.ID,
		User:     owner,
	}
}

// OwnedBy reports whether userID created the todo.
func (t *Todo) OwnedBy(userID uint) bool {
	return t.UserID != 0 && t.UserID == userID
}
