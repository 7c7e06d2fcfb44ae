package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// LoginRequest is the DTO for the login form. The only local gate is
// that both fields are present; everything else is the provider's call.
type LoginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// SignupRequest is the DTO for the registration form. The password
// rules here mirror the provider's minimum so obviously-bad input never
// costs a network round trip.
type SignupRequest struct {
	Email           string `form:"email" validate:"required"`
	Password        string `form:"password" validate:"required,min=6"`
	PasswordConfirm string `form:"password_confirm" validate:"eqfield=Password"`
}

// EmailRequest is the DTO for the forgot-password and one-time-link
// forms. The shape check is deliberately loose; the provider does the
// real address validation.
type EmailRequest struct {
	Email string `form:"email" validate:"required,contains=@"`
}
