package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPhoneNumber indicates a phone number failed validation.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// phonePattern accepts digits with optional +, spaces, and hyphens; at least
// seven characters after trimming.
var phonePattern = regexp.MustCompile(`^[0-9\s+\-]{7,}$`)

// PhoneNumber is a patient contact number. Formatting characters are kept as
// entered; two numbers differing only in spacing are distinct values.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber creates a validated PhoneNumber.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PhoneNumber{}, fmt.Errorf("phone number cannot be empty: %w", ErrInvalidPhoneNumber)
	}
	if !phonePattern.MatchString(trimmed) {
		return PhoneNumber{}, fmt.Errorf("phone number must be at least 7 digits and may include +, spaces, and hyphens: %w", ErrInvalidPhoneNumber)
	}
	return PhoneNumber{value: trimmed}, nil
}

// MustPhoneNumber creates a PhoneNumber, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustPhoneNumber(raw string) PhoneNumber {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Value returns the number as entered.
func (p PhoneNumber) Value() string { return p.value }

// IsZero returns true if this is the zero value (uninitialized).
func (p PhoneNumber) IsZero() bool { return p.value == "" }

// Equals compares by value; a zero number equals nothing.
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return !p.IsZero() && p.value == other.value
}
