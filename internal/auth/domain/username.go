package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidUsername indicates a username failed validation.
var ErrInvalidUsername = errors.New("invalid username")

// Letters, digits, dots, hyphens, underscores; must start and end with a
// letter or digit, so no leading/trailing/consecutive-only separators.
var usernamePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9._-]*[a-z0-9])?$`)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
)

// Username is a normalized (trimmed, lowercased) login name.
type Username struct {
	value string
}

// NewUsername creates a validated Username from raw input.
func NewUsername(raw string) (Username, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Username{}, fmt.Errorf("username cannot be empty: %w", ErrInvalidUsername)
	}
	if len(normalized) < usernameMinLength {
		return Username{}, fmt.Errorf("username must be at least %d characters long: %w", usernameMinLength, ErrInvalidUsername)
	}
	if len(normalized) > usernameMaxLength {
		return Username{}, fmt.Errorf("username cannot be longer than %d characters: %w", usernameMaxLength, ErrInvalidUsername)
	}
	if !usernamePattern.MatchString(normalized) {
		return Username{}, fmt.Errorf("username may only contain letters, numbers, dots, hyphens, and underscores, and must start and end with a letter or number: %w", ErrInvalidUsername)
	}
	return Username{value: normalized}, nil
}

// MustUsername creates a Username, panicking if invalid.
func MustUsername(raw string) Username {
	username, err := NewUsername(raw)
	if err != nil {
		panic(err)
	}
	return username
}

// Value returns the normalized username.
func (u Username) Value() string { return u.value }

// IsZero returns true if this is the zero value (uninitialized).
func (u Username) IsZero() bool { return u.value == "" }

// Equals compares by normalized value; a zero Username equals nothing.
func (u Username) Equals(other Username) bool {
	return !u.IsZero() && u.value == other.value
}
