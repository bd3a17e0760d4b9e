package dto

import (
	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/validator"
)

// AuthRequest logs in an existing account or registers a new one
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *AuthRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AuthResponse struct {
	Token     string        `json:"token"`
	User      *user.Profile `json:"user"`
	IsNewUser bool          `json:"isNewUser"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// MessageResponse is returned by operations without a payload
type MessageResponse struct {
	Message string `json:"message"`
}
