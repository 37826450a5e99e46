package service

// Client-facing failure messages.
const (
	msgEmailRequired       = "이메일이 입력되지 않았습니다."
	msgEmailExists         = "이미 존재하는 이메일입니다."
	msgInvalidUserRole     = "유효하지 않은 UserRole"
	msgUserNotRegistered   = "가입되지 않은 유저입니다."
	msgWrongPassword       = "잘못된 비밀번호입니다."
	msgUserNotFound        = "User not found"
	msgTodoNotFound        = "Todo not found"
	msgTitleRequired       = "title cannot be empty"
	msgContentsRequired    = "contents cannot be empty"
	msgOwnerOnlyAssign     = "only the todo owner can assign managers"
	msgManagerUserNotFound = "manager user not found"
	msgSelfAssignment      = "todo owner cannot be assigned as their own manager"
	msgAlreadyManager      = "user is already a manager of this todo"
	msgOwnerOnlyRemove     = "only the todo owner can remove managers"
	msgManagerNotFound     = "Manager not found"
	msgManagerNotInTodo    = "manager does not belong to this todo"
	msgWeakPassword        = "새 비밀번호는 8자 이상이어야 하고, 숫자와 대문자를 포함해야 합니다."
	msgPasswordUnchanged   = "새 비밀번호는 기존 비밀번호와 같을 수 없습니다."
)
