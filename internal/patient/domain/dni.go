package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidDNI indicates a national identity document number failed validation.
var ErrInvalidDNI = errors.New("invalid DNI")

// dniPattern matches the Spanish DNI format: eight digits followed by a
// control letter.
var dniPattern = regexp.MustCompile(`^[0-9]{8}[A-Za-z]$`)

// DNI is a patient's national identity document number. The stored value is
// always uppercase.
type DNI struct {
	value string
}

// NewDNI creates a validated DNI. Input is trimmed and the control letter
// uppercased, so "12345678z" and "12345678Z" produce equal values.
func NewDNI(raw string) (DNI, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DNI{}, fmt.Errorf("DNI cannot be empty: %w", ErrInvalidDNI)
	}
	if !dniPattern.MatchString(trimmed) {
		return DNI{}, fmt.Errorf("DNI must be 8 digits followed by a letter: %w", ErrInvalidDNI)
	}
	return DNI{value: strings.ToUpper(trimmed)}, nil
}

// MustDNI creates a DNI, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustDNI(raw string) DNI {
	d, err := NewDNI(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// Value returns the normalized document number.
func (d DNI) Value() string { return d.value }

// IsZero returns true if this is the zero value (uninitialized).
func (d DNI) IsZero() bool { return d.value == "" }

// Equals compares by value; a zero DNI equals nothing.
func (d DNI) Equals(other DNI) bool {
	return !d.IsZero() && d.value == other.value
}
