// Package store persists User aggregates. Username and email are natural
// keys; Save is an upsert keyed by UserID.
package store

import (
	"context"

	"clinicore/internal/auth/domain"
)

// UserStore is the persistence contract consumed by the auth service.
// Lookups return sentinel.ErrNotFound when no user matches.
type UserStore interface {
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	UsernameExists(ctx context.Context, username domain.Username) (bool, error)
	EmailExists(ctx context.Context, email domain.Email) (bool, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id domain.UserID) error
}

// RoleStore persists Role aggregates.
type RoleStore interface {
	FindByID(ctx context.Context, id domain.RoleID) (*domain.Role, error)
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	Save(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id domain.RoleID) error
}

// PermissionStore persists Permission aggregates.
type PermissionStore interface {
	FindByID(ctx context.Context, id domain.PermissionID) (*domain.Permission, error)
	FindByName(ctx context.Context, name domain.PermissionName) (*domain.Permission, error)
	Save(ctx context.Context, permission *domain.Permission) error
	Delete(ctx context.Context, id domain.PermissionID) error
}
