// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string    `json:"access_token,omitempty"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any       `json:"data,omitempty"`
	Error                 string    `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns human readable message for the failed validation tag.
// The message is meant to be prefixed with the field name.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf(" must be at least %s characters long", fe.Param())
		}

		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be less than %s", fe.Param())
	case "email":
		return " must be a valid email"
	case "alphanum":
		return " must contain only letters and numbers"
	case "currency":
		return " is not supported"
	case "numeric":
		return " must be a number"
	}

	return " is invalid"
}

// BindingError returns the message for a failed request binding.
// Validation failures are reported for the first offending field.
func BindingError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0]
		return Response{Error: field.Field() + GetErrorMsg(field)}
	}

	return Error(err)
}
