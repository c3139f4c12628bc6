package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateOfBirth indicates a birth date failed validation.
var ErrInvalidDateOfBirth = errors.New("invalid date of birth")

// DateOfBirth is a patient's birth date. Stored truncated to the day in UTC.
type DateOfBirth struct {
	value time.Time
}

// NewDateOfBirth creates a validated DateOfBirth. The date must not be in the
// future relative to now; today is accepted.
func NewDateOfBirth(value, now time.Time) (DateOfBirth, error) {
	if value.IsZero() {
		return DateOfBirth{}, fmt.Errorf("date of birth cannot be zero: %w", ErrInvalidDateOfBirth)
	}
	day := truncateToDay(value)
	if day.After(truncateToDay(now)) {
		return DateOfBirth{}, fmt.Errorf("date of birth cannot be in the future: %w", ErrInvalidDateOfBirth)
	}
	return DateOfBirth{value: day}, nil
}

// MustDateOfBirth creates a DateOfBirth, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustDateOfBirth(value, now time.Time) DateOfBirth {
	d, err := NewDateOfBirth(value, now)
	if err != nil {
		panic(err)
	}
	return d
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Value returns the birth date at midnight UTC.
func (d DateOfBirth) Value() time.Time { return d.value }

// IsZero returns true if this is the zero value (uninitialized).
func (d DateOfBirth) IsZero() bool { return d.value.IsZero() }

// Equals compares by value; a zero date equals nothing.
func (d DateOfBirth) Equals(other DateOfBirth) bool {
	return !d.IsZero() && d.value.Equal(other.value)
}

// Age returns the patient's age in completed years at now.
func (d DateOfBirth) Age(now time.Time) int {
	today := truncateToDay(now)
	years := today.Year() - d.value.Year()
	anniversary := time.Date(today.Year(), d.value.Month(), d.value.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(anniversary) {
		years--
	}
	return years
}
