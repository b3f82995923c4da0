package account

import (
	"regexp"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// RegisterInput carries the sign up form.
// ConfirmPassword and AcceptTerms are checked locally and never sent.
type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	AcceptTerms     bool   `json:"-"`
}

// LoginInput carries the login form
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the sign up form the same way the registration page does
func (i *RegisterInput) Validate() error {
	if i == nil {
		return dnderr.InvalidArgument("register input cannot be nil")
	}

	switch {
	case i.Name == "":
		return fieldError("name", "name is required")
	case len(i.Name) < minNameLength:
		return fieldError("name", "name must be at least 2 characters")
	case len(i.Name) > maxNameLength:
		return fieldError("name", "name must be at most 50 characters")
	}

	if i.Email == "" {
		return fieldError("email", "email is required")
	}
	if !emailPattern.MatchString(i.Email) {
		return fieldError("email", "email is invalid")
	}

	if i.Password == "" {
		return fieldError("password", "password is required")
	}
	if len(i.Password) < minPasswordLength {
		return fieldError("password", "password must be at least 6 characters")
	}

	if i.ConfirmPassword == "" {
		return fieldError("confirmPassword", "password confirmation is required")
	}
	if i.ConfirmPassword != i.Password {
		return fieldError("confirmPassword", "passwords do not match")
	}

	if !i.AcceptTerms {
		return fieldError("terms", "terms of service must be accepted")
	}

	return nil
}

// Validate checks the login form
func (i *LoginInput) Validate() error {
	if i == nil {
		return dnderr.InvalidArgument("login input cannot be nil")
	}
	if strings.TrimSpace(i.Email) == "" {
		return fieldError("email", "email is required")
	}
	if i.Password == "" {
		return fieldError("password", "password is required")
	}
	return nil
}

func fieldError(field, message string) error {
	return dnderr.Validation(message).WithMeta("field", field)
}
