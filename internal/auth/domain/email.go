package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidEmail indicates an email address failed validation.
var ErrInvalidEmail = errors.New("invalid email address")

// RFC-lite: dot-atom local part, hyphenated domain labels, no quoted strings.
var emailPattern = regexp.MustCompile(
	"^[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$")

const emailMaxLength = 254

// Email is a normalized email address, shared by the auth and patient
// contexts. The stored value is always trimmed and lowercased, so
// re-creating an Email from its own Value yields an equal value object.
type Email struct {
	value string
}

// NewEmail creates a validated Email from raw input.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, fmt.Errorf("email address cannot be empty: %w", ErrInvalidEmail)
	}
	if len(normalized) > emailMaxLength {
		return Email{}, fmt.Errorf("email address cannot be longer than %d characters: %w", emailMaxLength, ErrInvalidEmail)
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, fmt.Errorf("email address format is invalid: %w", ErrInvalidEmail)
	}
	return Email{value: normalized}, nil
}

// MustEmail creates an Email, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustEmail(raw string) Email {
	email, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return email
}

// Value returns the normalized address.
func (e Email) Value() string { return e.value }

// IsZero returns true if this is the zero value (uninitialized).
func (e Email) IsZero() bool { return e.value == "" }

// Equals compares by normalized value; a zero Email equals nothing.
func (e Email) Equals(other Email) bool {
	return !e.IsZero() && e.value == other.value
}
