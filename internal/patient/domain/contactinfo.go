package domain

import (
	authdomain "clinicore/internal/auth/domain"
	dErrors "clinicore/pkg/domain-errors"
)

// Email reuses the auth context's email value object; both contexts share the
// same normalization rules.
type Email = authdomain.Email

// NewEmail validates and normalizes an email address.
func NewEmail(raw string) (Email, error) { return authdomain.NewEmail(raw) }

// MustEmail creates an Email, panicking if invalid.
func MustEmail(raw string) Email { return authdomain.MustEmail(raw) }

// ErrInvalidEmail indicates an email address failed validation.
var ErrInvalidEmail = authdomain.ErrInvalidEmail

// ContactInfo groups a patient's reachable channels. Email, phone, and the
// postal address are all required.
type ContactInfo struct {
	email   Email
	phone   PhoneNumber
	address Address
}

// NewContactInfo creates ContactInfo from already-validated value objects.
func NewContactInfo(email Email, phone PhoneNumber, address Address) (ContactInfo, error) {
	if email.IsZero() {
		return ContactInfo{}, dErrors.New(dErrors.CodeInvariantViolation, "contact email is required")
	}
	if phone.IsZero() {
		return ContactInfo{}, dErrors.New(dErrors.CodeInvariantViolation, "contact phone is required")
	}
	if address.IsZero() {
		return ContactInfo{}, dErrors.New(dErrors.CodeInvariantViolation, "contact address is required")
	}
	return ContactInfo{email: email, phone: phone, address: address}, nil
}

func (c ContactInfo) Email() Email       { return c.email }
func (c ContactInfo) Phone() PhoneNumber { return c.phone }
func (c ContactInfo) Address() Address   { return c.address }

// IsZero returns true if this is the zero value (uninitialized).
func (c ContactInfo) IsZero() bool { return c.email.IsZero() && c.phone.IsZero() }

// Equals compares all components; a zero ContactInfo equals nothing.
func (c ContactInfo) Equals(other ContactInfo) bool {
	if c.IsZero() {
		return false
	}
	return c.email.Equals(other.email) &&
		c.phone.Equals(other.phone) &&
		c.address == other.address
}
