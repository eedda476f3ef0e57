package auth

import (
	"time"

	"github.com/benkovy/fyp-api/internal/users"
	"github.com/benkovy/fyp-api/pkg/enums"
)

// RegisterRequest captures the signup payload.
type RegisterRequest struct {
	FirstName   string         `json:"first_name" validate:"required"`
	LastName    string         `json:"last_name" validate:"required"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	Description string         `json:"description,omitempty"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	UserType    enums.UserType `json:"user_type,omitempty"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token and its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse contains the token pair and profile produced by signup or login.
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         users.UserDTO `json:"user"`
}

// TokenPairResponse is the rotated pair returned by refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
