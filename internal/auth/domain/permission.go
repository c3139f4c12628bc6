package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	dErrors "clinicore/pkg/domain-errors"
)

var (
	// ErrInvalidPermissionName indicates a permission name failed validation.
	ErrInvalidPermissionName = errors.New("invalid permission name")
	// ErrInvalidPermissionDescription indicates a permission description failed validation.
	ErrInvalidPermissionDescription = errors.New("invalid permission description")
)

// PermissionName is a short alphanumeric permission label.
type PermissionName struct {
	value string
}

// NewPermissionName creates a validated PermissionName.
func NewPermissionName(raw string) (PermissionName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PermissionName{}, fmt.Errorf("permission name cannot be empty: %w", ErrInvalidPermissionName)
	}
	if len(trimmed) < nameMinLength || len(trimmed) > nameMaxLength {
		return PermissionName{}, fmt.Errorf("permission name must be between %d and %d characters: %w", nameMinLength, nameMaxLength, ErrInvalidPermissionName)
	}
	if !alphanumericPattern.MatchString(trimmed) {
		return PermissionName{}, fmt.Errorf("permission name may only contain letters and numbers: %w", ErrInvalidPermissionName)
	}
	return PermissionName{value: trimmed}, nil
}

func (n PermissionName) Value() string { return n.value }
func (n PermissionName) IsZero() bool  { return n.value == "" }
func (n PermissionName) Equals(other PermissionName) bool {
	return !n.IsZero() && n.value == other.value
}

// PermissionDescription is free text bounded for storage and display.
type PermissionDescription struct {
	value string
}

// NewPermissionDescription creates a validated PermissionDescription.
func NewPermissionDescription(raw string) (PermissionDescription, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PermissionDescription{}, fmt.Errorf("permission description cannot be empty: %w", ErrInvalidPermissionDescription)
	}
	if len(trimmed) < descriptionMinLength || len(trimmed) > descriptionMaxLength {
		return PermissionDescription{}, fmt.Errorf("permission description must be between %d and %d characters: %w", descriptionMinLength, descriptionMaxLength, ErrInvalidPermissionDescription)
	}
	if markupPattern.MatchString(trimmed) {
		return PermissionDescription{}, fmt.Errorf("permission description must not include <, >, or &: %w", ErrInvalidPermissionDescription)
	}
	return PermissionDescription{value: trimmed}, nil
}

func (d PermissionDescription) Value() string { return d.value }
func (d PermissionDescription) IsZero() bool  { return d.value == "" }
func (d PermissionDescription) Equals(other PermissionDescription) bool {
	return !d.IsZero() && d.value == other.value
}

// Permission is an authorization aggregate, scaffolding like Role.
type Permission struct {
	id          PermissionID
	name        PermissionName
	description PermissionDescription
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPermission creates a Permission. Both timestamps start at now.
func NewPermission(id PermissionID, name PermissionName, description PermissionDescription, now time.Time) (*Permission, error) {
	if id.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "permission ID is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "permission name is required")
	}
	if description.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "permission description is required")
	}
	return &Permission{id: id, name: name, description: description, createdAt: now, updatedAt: now}, nil
}

// ChangeName replaces the name unless it is unchanged.
func (p *Permission) ChangeName(name PermissionName, now time.Time) {
	if p.name.Equals(name) {
		return
	}
	p.name = name
	p.updatedAt = now
}

// ChangeDescription replaces the description unless it is unchanged.
func (p *Permission) ChangeDescription(description PermissionDescription, now time.Time) {
	if p.description.Equals(description) {
		return
	}
	p.description = description
	p.updatedAt = now
}

// Equals is identity-based.
func (p *Permission) Equals(other *Permission) bool {
	if other == nil {
		return false
	}
	return p.id.Equals(other.id)
}

func (p *Permission) ID() PermissionID                   { return p.id }
func (p *Permission) Name() PermissionName               { return p.name }
func (p *Permission) Description() PermissionDescription { return p.description }
func (p *Permission) CreatedAt() time.Time               { return p.createdAt }
func (p *Permission) UpdatedAt() time.Time               { return p.updatedAt }
