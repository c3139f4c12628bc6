package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPasswordHash indicates a password hash failed validation.
var ErrInvalidPasswordHash = errors.New("invalid password hash")

// bcrypt output is always 60 bytes; anything else is not a bcrypt hash.
const bcryptHashLength = 60

// PasswordHash wraps a bcrypt-shaped hash. The domain never sees plaintext
// passwords; hashing lives behind the PasswordHasher port.
type PasswordHash struct {
	value string
}

// NewPasswordHash creates a validated PasswordHash.
func NewPasswordHash(raw string) (PasswordHash, error) {
	if strings.TrimSpace(raw) == "" {
		return PasswordHash{}, fmt.Errorf("password hash cannot be empty: %w", ErrInvalidPasswordHash)
	}
	if len(raw) != bcryptHashLength {
		return PasswordHash{}, fmt.Errorf("password hash must be exactly %d characters (bcrypt format): %w", bcryptHashLength, ErrInvalidPasswordHash)
	}
	return PasswordHash{value: raw}, nil
}

// MustPasswordHash creates a PasswordHash, panicking if invalid.
func MustPasswordHash(raw string) PasswordHash {
	hash, err := NewPasswordHash(raw)
	if err != nil {
		panic(err)
	}
	return hash
}

// Value returns the stored hash.
func (p PasswordHash) Value() string { return p.value }

// IsZero returns true if this is the zero value (uninitialized).
func (p PasswordHash) IsZero() bool { return p.value == "" }

// Equals compares the hash strings; a zero PasswordHash equals nothing.
func (p PasswordHash) Equals(other PasswordHash) bool {
	return !p.IsZero() && p.value == other.value
}
