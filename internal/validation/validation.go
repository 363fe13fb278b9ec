// Package validation holds the pure field validators invoked at component
// boundaries before anything is persisted. Each validator returns the value
// to store (trimmed where applicable) or a field-tagged error detail.
package validation

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blogi/blogi-api/internal/models"
)

const (
	maxTitleLen    = 100
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
)

// Title validates a post title and returns the trimmed value to store.
// Length is measured in runes on the raw input.
func Title(raw string) (string, *models.ErrorDetail) {
	if strings.TrimSpace(raw) == "" {
		return "", &models.ErrorDetail{
			Field:   "title",
			Message: "Title cannot be empty",
			Code:    models.CodeEmptyField,
		}
	}
	if utf8.RuneCountInString(raw) > maxTitleLen {
		return "", &models.ErrorDetail{
			Field:   "title",
			Message: "Title cannot exceed 100 characters",
			Code:    models.CodeTooLong,
		}
	}
	return strings.TrimSpace(raw), nil
}

// Content validates a post body and returns the trimmed value to store.
func Content(raw string) (string, *models.ErrorDetail) {
	if strings.TrimSpace(raw) == "" {
		return "", &models.ErrorDetail{
			Field:   "content",
			Message: "Content cannot be empty",
			Code:    models.CodeEmptyField,
		}
	}
	return strings.TrimSpace(raw), nil
}

// Username validates a username on registration.
func Username(raw string) (string, *models.ErrorDetail) {
	n := utf8.RuneCountInString(raw)
	if n < minUsernameLen {
		return "", &models.ErrorDetail{
			Field:   "username",
			Message: "Username must be at least 3 characters",
			Code:    models.CodeTooShort,
		}
	}
	if n > maxUsernameLen {
		return "", &models.ErrorDetail{
			Field:   "username",
			Message: "Username cannot exceed 50 characters",
			Code:    models.CodeTooLong,
		}
	}
	return raw, nil
}

// Email validates an email address syntactically.
func Email(raw string) (string, *models.ErrorDetail) {
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", &models.ErrorDetail{
			Field:   "email",
			Message: "Invalid email address",
			Code:    models.CodeInvalidEmail,
		}
	}
	return raw, nil
}

// Password enforces the password policy: at least 8 characters,
// one digit, and one uppercase letter.
func Password(raw string) *models.ErrorDetail {
	if utf8.RuneCountInString(raw) < minPasswordLen {
		return &models.ErrorDetail{
			Field:   "password",
			Message: "Password must be at least 8 characters",
			Code:    models.CodeTooShort,
		}
	}
	var hasDigit, hasUpper bool
	for _, r := range raw {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	if !hasDigit {
		return &models.ErrorDetail{
			Field:   "password",
			Message: "Password must contain at least one digit",
			Code:    models.CodeMissingDigit,
		}
	}
	if !hasUpper {
		return &models.ErrorDetail{
			Field:   "password",
			Message: "Password must contain at least one uppercase letter",
			Code:    models.CodeMissingUppercase,
		}
	}
	return nil
}
