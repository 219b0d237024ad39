package services

import (
	"context"

	"tilboard/internal/domain/models"
)

// SignUpRequest represents a request to create an account
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a credential check
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService defines account operations
type UserService interface {
	// SignUp creates a new user with a hashed password
	SignUp(ctx context.Context, req *SignUpRequest) (*models.User, error)

	// Login verifies credentials and returns a signed access token
	Login(ctx context.Context, req *LoginRequest) (string, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*models.User, error)
}
