package validation

import (
	"errors"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 12
)

var (
	ErrPasswordRequired     = errors.New("password is required")
	ErrPasswordLength       = errors.New("password must be between 8 and 12 characters")
	ErrPasswordLowercase    = errors.New("password must contain at least one lowercase letter")
	ErrPasswordUppercase    = errors.New("password must contain at least one uppercase letter")
	ErrPasswordDigit        = errors.New("password must contain at least one digit")
	ErrPasswordAlphanumeric = errors.New("password must contain only letters and digits")
)

// ValidatePassword enforces the account and league password policy:
// 8 to 12 ASCII letters and digits with at least one lowercase letter,
// one uppercase letter and one digit.
func ValidatePassword(s string) error {
	if s == "" {
		return ErrPasswordRequired
	}
	if len(s) < PasswordMinLength || len(s) > PasswordMaxLength {
		return ErrPasswordLength
	}

	var lower, upper, digit, other bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			other = true
		}
	}

	switch {
	case !lower:
		return ErrPasswordLowercase
	case !upper:
		return ErrPasswordUppercase
	case !digit:
		return ErrPasswordDigit
	case other:
		return ErrPasswordAlphanumeric
	}
	return nil
}

// IsValidPassword reports whether s satisfies ValidatePassword
func IsValidPassword(s string) bool {
	return ValidatePassword(s) == nil
}
