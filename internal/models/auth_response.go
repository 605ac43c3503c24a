package models

import (
	"time"

	"aquabio-be/internal/entities"
)

// UserResponse is the public projection of a user, never carrying the
// password hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse represents the response after successful registration or login.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"` // JWT bearer credential
	User    UserResponse `json:"user"`
}

// UserListResponse is the admin-only listing of all accounts.
type UserListResponse struct {
	Total int            `json:"total"`
	Users []UserResponse `json:"users"`
}

// NewUserResponse builds the public projection from a stored user.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
