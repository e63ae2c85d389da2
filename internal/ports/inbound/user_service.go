package inbound

import (
	"context"
	"time"
)

// UserService defines the account use cases behind the login surface
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)
	Authenticate(ctx context.Context, cmd LoginCommand) (*UserDTO, error)
	GetUser(ctx context.Context, id uint) (*UserDTO, error)
}

// RegisterCommand contains user registration data
type RegisterCommand struct {
	Username string `json:"username" form:"username" binding:"required,max=150"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

// LoginCommand contains user login data
type LoginCommand struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
