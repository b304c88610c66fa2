package dto

import "github.com/samadhan-cg/samadhan-api/internal/models"

// LoginRequest holds admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"-"`
}

// LoginResponse returns the sanitized account and an access token. Legacy
// clients keep only a boolean flag and may ignore the token.
type LoginResponse struct {
	Message string           `json:"message"`
	User    models.AdminInfo `json:"user"`
	Token   string           `json:"token,omitempty"`
}

// CreateAdminRequest creates a new administrative account.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest partially updates an account. The password changes
// only when a non-empty value is supplied.
type UpdateProfileRequest struct {
	ID       int64  `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

// UpdateProfileResponse echoes the updated profile fields.
type UpdateProfileResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
}
