package auth

import (
	"github.com/google/uuid"

	"github.com/adebayof/gromart-backend/pkg/enums"
)

// LoginRequest carries the credentials posted to /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest carries the payload posted to /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required,min=2"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7"`
}

// UserSummary is the profile projection returned with every token pair.
type UserSummary struct {
	ID       uuid.UUID      `json:"id"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name"`
	Role     enums.UserRole `json:"role"`
}

// TokenPair bundles the access token and its refresh counterpart.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is returned by Login and Register.
type LoginResponse struct {
	User   UserSummary `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}
