package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidFullName indicates a patient name failed validation.
var ErrInvalidFullName = errors.New("invalid full name")

// namePartPattern accepts Latin letters including Spanish accented vowels and
// ñ, plus spaces and hyphens for compound names.
var namePartPattern = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s-]+$`)

// FullName is a patient's legal name, first and last name held separately.
type FullName struct {
	firstName string
	lastName  string
}

// NewFullName creates a validated FullName. Both parts are trimmed; interior
// casing and spacing are preserved as given.
func NewFullName(firstName, lastName string) (FullName, error) {
	first, err := validateNamePart("first name", firstName)
	if err != nil {
		return FullName{}, err
	}
	last, err := validateNamePart("last name", lastName)
	if err != nil {
		return FullName{}, err
	}
	return FullName{firstName: first, lastName: last}, nil
}

func validateNamePart(label, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%s cannot be empty: %w", label, ErrInvalidFullName)
	}
	if !namePartPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%s may only contain letters, spaces, and hyphens: %w", label, ErrInvalidFullName)
	}
	return trimmed, nil
}

// MustFullName creates a FullName, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustFullName(firstName, lastName string) FullName {
	n, err := NewFullName(firstName, lastName)
	if err != nil {
		panic(err)
	}
	return n
}

// FirstName returns the first name.
func (n FullName) FirstName() string { return n.firstName }

// LastName returns the last name.
func (n FullName) LastName() string { return n.lastName }

// Value returns the rendered "First Last" form.
func (n FullName) Value() string { return n.firstName + " " + n.lastName }

// IsZero returns true if this is the zero value (uninitialized).
func (n FullName) IsZero() bool { return n.firstName == "" && n.lastName == "" }

// Equals compares both parts; a zero name equals nothing.
func (n FullName) Equals(other FullName) bool {
	return !n.IsZero() && n.firstName == other.firstName && n.lastName == other.lastName
}
