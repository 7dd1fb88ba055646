package dto

import (
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/famled/family_finance_app/internal/rbac"
)

// RegisterUserRequest defines the data needed to self-register a user.
// Self-registered users always get the USER role.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// CreateUserRequest defines the data needed for an admin to create a user
// with an explicit role. The creator's role must be allowed to assign
// Role per the role creation whitelist.
type CreateUserRequest struct {
	Username string    `json:"username" binding:"required,min=3,max=50"`
	Password string    `json:"password" binding:"required,min=8"`
	Name     string    `json:"name" binding:"required"`
	Role     rbac.Role `json:"role" binding:"required,oneof=USER ADMIN"`
}

// UpdateUserRequest defines the updatable user fields.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
}

// UpdateUserRoleRequest changes a user's global role.
type UpdateUserRoleRequest struct {
	Role rbac.Role `json:"role" binding:"required,oneof=USER ADMIN"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      rbac.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to UserResponse DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
