package dto

import (
	"time"

	"github.com/yigit/placement-portal/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the caller's role.
type LoginResponse struct {
	Role      models.RoleType `json:"role" example:"student"`
	Token     string          `json:"token"`
	TokenType string          `json:"tokenType" example:"Bearer"`
	ExpiresIn int64           `json:"expiresIn" example:"86400"`
}

// UserResponse represents the authenticated account without its password
type UserResponse struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	Role        models.RoleType `json:"role"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewUserResponse converts a stored user for output.
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.RoleType,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
