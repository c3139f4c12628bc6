package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAddress indicates a postal address failed validation.
var ErrInvalidAddress = errors.New("invalid address")

// Address is a patient's postal address. All five fields are required.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
}

// NewAddress creates a validated Address. Each field is trimmed and must be
// non-empty.
func NewAddress(street, city, state, postalCode, country string) (Address, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"street", &street},
		{"city", &city},
		{"state", &state},
		{"postal code", &postalCode},
		{"country", &country},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return Address{}, fmt.Errorf("address %s cannot be empty: %w", f.name, ErrInvalidAddress)
		}
	}
	return Address{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
	}, nil
}

// MustAddress creates an Address, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustAddress(street, city, state, postalCode, country string) Address {
	a, err := NewAddress(street, city, state, postalCode, country)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

// IsZero returns true if this is the zero value (uninitialized).
func (a Address) IsZero() bool { return a == Address{} }

// Equals compares all five fields; a zero address equals nothing.
func (a Address) Equals(other Address) bool {
	return !a.IsZero() && a == other
}

// String renders the address on one line for display and logging.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.postalCode, a.country)
}
