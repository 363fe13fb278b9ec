package services

import (
	"errors"

	"github.com/blogi/blogi-api/internal/models"
)

// Error variables
var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("blog post not found")
	ErrNotPostOwner       = errors.New("not the owner of this blog post")
)

// ValidationError carries the field-level details of a rejected input.
type ValidationError struct {
	Details []models.ErrorDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) > 0 {
		return e.Details[0].Message
	}
	return "validation failed"
}

// NewValidationError builds a ValidationError from one or more details.
func NewValidationError(details ...models.ErrorDetail) *ValidationError {
	return &ValidationError{Details: details}
}
