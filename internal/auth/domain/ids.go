// Package domain holds the authentication context's value objects, aggregates,
// and domain events.
//
// Domain purity: no I/O, no context.Context, no time.Now() calls. Time is
// always received as a parameter from the application layer. Value objects are
// immutable, equal by structure, and constructible only through their
// validating factory; a zero value is detectable via IsZero and never equal to
// anything.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidUserID indicates a user identifier failed UUID validation.
	ErrInvalidUserID = errors.New("invalid user ID")
	// ErrInvalidRoleID indicates a role identifier failed UUID validation.
	ErrInvalidRoleID = errors.New("invalid role ID")
	// ErrInvalidPermissionID indicates a permission identifier failed UUID validation.
	ErrInvalidPermissionID = errors.New("invalid permission ID")
)

// UserID is the identity of a User aggregate.
//
// Invariants:
//   - Valid, non-nil v4-style UUID in canonical string form
type UserID struct {
	value string
}

// NewUserID mints a fresh random user identifier.
func NewUserID() UserID {
	return UserID{value: uuid.NewString()}
}

// ParseUserID validates an externally supplied identifier.
func ParseUserID(raw string) (UserID, error) {
	value, err := parseUUID(raw)
	if err != nil {
		return UserID{}, fmt.Errorf("%s: %w", err, ErrInvalidUserID)
	}
	return UserID{value: value}, nil
}

// MustUserID parses an identifier, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustUserID(raw string) UserID {
	id, err := ParseUserID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical UUID string.
func (id UserID) String() string { return id.value }

// IsZero returns true if this is the zero value (uninitialized).
func (id UserID) IsZero() bool { return id.value == "" }

// Equals compares by value. A zero identifier equals nothing, itself included.
func (id UserID) Equals(other UserID) bool {
	return !id.IsZero() && id.value == other.value
}

// RoleID is the identity of a Role aggregate.
type RoleID struct {
	value string
}

// NewRoleID mints a fresh random role identifier.
func NewRoleID() RoleID {
	return RoleID{value: uuid.NewString()}
}

// ParseRoleID validates an externally supplied identifier.
func ParseRoleID(raw string) (RoleID, error) {
	value, err := parseUUID(raw)
	if err != nil {
		return RoleID{}, fmt.Errorf("%s: %w", err, ErrInvalidRoleID)
	}
	return RoleID{value: value}, nil
}

func (id RoleID) String() string { return id.value }
func (id RoleID) IsZero() bool   { return id.value == "" }
func (id RoleID) Equals(other RoleID) bool {
	return !id.IsZero() && id.value == other.value
}

// PermissionID is the identity of a Permission aggregate.
type PermissionID struct {
	value string
}

// NewPermissionID mints a fresh random permission identifier.
func NewPermissionID() PermissionID {
	return PermissionID{value: uuid.NewString()}
}

// ParsePermissionID validates an externally supplied identifier.
func ParsePermissionID(raw string) (PermissionID, error) {
	value, err := parseUUID(raw)
	if err != nil {
		return PermissionID{}, fmt.Errorf("%s: %w", err, ErrInvalidPermissionID)
	}
	return PermissionID{value: value}, nil
}

func (id PermissionID) String() string { return id.value }
func (id PermissionID) IsZero() bool   { return id.value == "" }
func (id PermissionID) Equals(other PermissionID) bool {
	return !id.IsZero() && id.value == other.value
}

func parseUUID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("identifier cannot be empty")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", errors.New("identifier must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return "", errors.New("identifier cannot be the nil UUID")
	}
	return parsed.String(), nil
}
