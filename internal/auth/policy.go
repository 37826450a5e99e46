package auth

import (
	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/domain"
)

// Allows is the role policy: ADMIN satisfies every requirement, USER only a
// USER requirement. Unknown roles are denied.
func Allows(identity domain.AuthIdentity, required domain.UserRole) bool {
	switch required {
	case domain.RoleUser:
		return identity.Role == domain.RoleUser || identity.Role == domain.RoleAdmin
	case domain.RoleAdmin:
		return identity.Role == domain.RoleAdmin
	default:
		return false
	}
}

func Authorize(identity domain.AuthIdentity, required domain.UserRole) error {
	if Allows(identity, required) {
		return nil
	}
	if required == domain.RoleAdmin {
		return apperror.Forbidden("관리자 권한이 없습니다.")
	}
	return apperror.Forbidden("권한이 없습니다.")
}
