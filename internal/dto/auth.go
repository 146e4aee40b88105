package dto

import "time"

// SignUpRequest defines the credentials for a new user.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignUpResponse returns the new user's ID.
type SignUpResponse struct {
	UserID string `json:"userID"`
}

// LoginRequest defines the credentials for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	UserID    string    `json:"userID"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CurrentUserResponse identifies the signed-in user.
type CurrentUserResponse struct {
	UserID string `json:"userID"`
}
