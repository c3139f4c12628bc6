// Package domain holds the patient context's value objects and the Patient
// aggregate.
//
// Domain purity: no I/O, no context.Context, no time.Now() calls. Time is
// always received as a parameter from the application layer.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPatientID indicates a patient identifier failed validation.
var ErrInvalidPatientID = errors.New("invalid patient ID")

// PatientID is the identity of a Patient aggregate. New identifiers are v4
// UUIDs, but parsing accepts any non-blank string: historical records carry
// ids issued before the UUID convention.
type PatientID struct {
	value string
}

// NewPatientID mints a fresh random patient identifier.
func NewPatientID() PatientID {
	return PatientID{value: uuid.NewString()}
}

// ParsePatientID validates an externally supplied identifier.
func ParsePatientID(raw string) (PatientID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PatientID{}, fmt.Errorf("patient ID cannot be empty: %w", ErrInvalidPatientID)
	}
	return PatientID{value: trimmed}, nil
}

// MustPatientID parses an identifier, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustPatientID(raw string) PatientID {
	id, err := ParsePatientID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the identifier value.
func (id PatientID) String() string { return id.value }

// IsZero returns true if this is the zero value (uninitialized).
func (id PatientID) IsZero() bool { return id.value == "" }

// Equals compares by value; a zero identifier equals nothing.
func (id PatientID) Equals(other PatientID) bool {
	return !id.IsZero() && id.value == other.value
}
