package service

import (
	"time"

	"github.com/Tomlord1122/todo-expert/internal/domain"
)

// Input/Output Structs (Data Transfer Objects - DTOs)
// Services exchange these with the HTTP layer so domain models never leak
// into request or response bodies.

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserRole string `json:"userRole"`
}

type SignupResponse struct {
	BearerToken string `json:"bearerToken"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	BearerToken string `json:"bearerToken"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UserRoleChangeRequest struct {
	Role string `json:"role"`
}

type TodoSaveRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

type TodoSaveResponse struct {
	ID       uint         `json:"id"`
	Title    string       `json:"title"`
	Contents string       `json:"contents"`
	Weather  string       `json:"weather"`
	User     UserResponse `json:"user"`
}

type TodoResponse struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	Contents   string       `json:"contents"`
	Weather    string       `json:"weather"`
	User       UserResponse `json:"user"`
	CreatedAt  string       `json:"createdAt"`
	ModifiedAt string       `json:"modifiedAt"`
}

// TodoPage is one page of todos. Page is 1-indexed.
type TodoPage struct {
	Content       []TodoResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

type ManagerSaveRequest struct {
	ManagerUserID uint `json:"managerUserId"`
}

type ManagerSaveResponse struct {
	ID   uint         `json:"id"`
	User UserResponse `json:"user"`
}

type ManagerResponse struct {
	ID   uint         `json:"id"`
	User UserResponse `json:"user"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

func toTodoResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:         t.ID,
		Title:      t.Title,
		Contents:   t.Contents,
		Weather:    t.Weather,
		User:       toUserResponse(t.User),
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		ModifiedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}
