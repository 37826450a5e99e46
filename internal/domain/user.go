package domain

import (
	"strings"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// ParseUserRole accepts the role names case-insensitively.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

func (r UserRole) String() string { return string(r) }

type User struct {
	gorm.Model
	Email    string   `gorm:"uniqueIndex;not null"`
	Password string   `gorm:"not null"`
	Role     UserRole `gorm:"type:varchar(16);not null"`
}

// AuthIdentity is the verified caller extracted from a token. It is used for
// authorization decisions only and is never persisted.
type AuthIdentity struct {
	ID    uint
	Email string
	Role  UserRole
}
