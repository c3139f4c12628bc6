package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	dErrors "clinicore/pkg/domain-errors"
)

var (
	// ErrInvalidRoleName indicates a role name failed validation.
	ErrInvalidRoleName = errors.New("invalid role name")
	// ErrInvalidRoleDescription indicates a role description failed validation.
	ErrInvalidRoleDescription = errors.New("invalid role description")
)

var alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// markupPattern rejects characters that could smuggle HTML/XML into rendered
// descriptions.
var markupPattern = regexp.MustCompile(`[<>&]`)

const (
	nameMinLength        = 3
	nameMaxLength        = 50
	descriptionMinLength = 4
	descriptionMaxLength = 255
)

// RoleName is a short alphanumeric role label.
type RoleName struct {
	value string
}

// NewRoleName creates a validated RoleName.
func NewRoleName(raw string) (RoleName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RoleName{}, fmt.Errorf("role name cannot be empty: %w", ErrInvalidRoleName)
	}
	if len(trimmed) < nameMinLength || len(trimmed) > nameMaxLength {
		return RoleName{}, fmt.Errorf("role name must be between %d and %d characters: %w", nameMinLength, nameMaxLength, ErrInvalidRoleName)
	}
	if !alphanumericPattern.MatchString(trimmed) {
		return RoleName{}, fmt.Errorf("role name may only contain letters and numbers: %w", ErrInvalidRoleName)
	}
	return RoleName{value: trimmed}, nil
}

func (n RoleName) Value() string { return n.value }
func (n RoleName) IsZero() bool  { return n.value == "" }
func (n RoleName) Equals(other RoleName) bool {
	return !n.IsZero() && n.value == other.value
}

// RoleDescription is free text bounded for storage and display.
type RoleDescription struct {
	value string
}

// NewRoleDescription creates a validated RoleDescription.
func NewRoleDescription(raw string) (RoleDescription, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RoleDescription{}, fmt.Errorf("role description cannot be empty: %w", ErrInvalidRoleDescription)
	}
	if len(trimmed) < descriptionMinLength || len(trimmed) > descriptionMaxLength {
		return RoleDescription{}, fmt.Errorf("role description must be between %d and %d characters: %w", descriptionMinLength, descriptionMaxLength, ErrInvalidRoleDescription)
	}
	if markupPattern.MatchString(trimmed) {
		return RoleDescription{}, fmt.Errorf("role description must not include <, >, or &: %w", ErrInvalidRoleDescription)
	}
	return RoleDescription{value: trimmed}, nil
}

func (d RoleDescription) Value() string { return d.value }
func (d RoleDescription) IsZero() bool  { return d.value == "" }
func (d RoleDescription) Equals(other RoleDescription) bool {
	return !d.IsZero() && d.value == other.value
}

// Role is an authorization aggregate. No use case consumes it yet; it exists
// as the seam for a future authorization feature.
type Role struct {
	id          RoleID
	name        RoleName
	description RoleDescription
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRole creates a Role. Both timestamps start at now.
func NewRole(id RoleID, name RoleName, description RoleDescription, now time.Time) (*Role, error) {
	if id.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "role ID is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "role name is required")
	}
	if description.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "role description is required")
	}
	return &Role{id: id, name: name, description: description, createdAt: now, updatedAt: now}, nil
}

// ChangeName replaces the name unless it is unchanged.
func (r *Role) ChangeName(name RoleName, now time.Time) {
	if r.name.Equals(name) {
		return
	}
	r.name = name
	r.updatedAt = now
}

// ChangeDescription replaces the description unless it is unchanged.
func (r *Role) ChangeDescription(description RoleDescription, now time.Time) {
	if r.description.Equals(description) {
		return
	}
	r.description = description
	r.updatedAt = now
}

// Equals is identity-based.
func (r *Role) Equals(other *Role) bool {
	if other == nil {
		return false
	}
	return r.id.Equals(other.id)
}

func (r *Role) ID() RoleID                   { return r.id }
func (r *Role) Name() RoleName               { return r.name }
func (r *Role) Description() RoleDescription { return r.description }
func (r *Role) CreatedAt() time.Time         { return r.createdAt }
func (r *Role) UpdatedAt() time.Time         { return r.updatedAt }
