package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its validate tags. The first
// violation is returned as a 400 ApiError with the user-facing message, so
// no store call happens for malformed input.
func ValidateRequest(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return NewValidationError("Invalid request")
	}

	return NewValidationError(fieldMessage(validationErrors[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "Please enter a valid email address"
	case "Password", "NewPassword":
		if fe.Tag() == "min" {
			return "Password must be at least 6 characters"
		}
		return "Password is required"
	case "ConfirmPassword":
		if fe.Tag() == "eqfield" {
			return "Passwords do not match"
		}
		return "Password confirmation is required"
	case "Code":
		return "Please enter the 6-digit code"
	case "Title":
		return "Title is required"
	case "Url":
		return "Please enter a valid URL"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
