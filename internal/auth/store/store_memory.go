package store

import (
	"context"
	"fmt"
	"sync"

	"clinicore/internal/auth/domain"
	"clinicore/pkg/platform/sentinel"
)

// MemoryUserStore keeps users in process memory. Suitable for tests and
// local development; state is lost on restart.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*domain.User)}
}

func (s *MemoryUserStore) FindByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id.String()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return user, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username domain.Username) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username().Equals(username) {
			return user, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email().Equals(email) {
			return user, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryUserStore) UsernameExists(_ context.Context, username domain.Username) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username().Equals(username) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) EmailExists(_ context.Context, email domain.Email) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email().Equals(email) {
			return true, nil
		}
	}
	return false, nil
}

// Save upserts by UserID. Saving a user whose username or email belongs to a
// different stored user fails with sentinel.ErrConflict.
func (s *MemoryUserStore) Save(_ context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Equals(user) {
			continue
		}
		if existing.Username().Equals(user.Username()) || existing.Email().Equals(user.Email()) {
			return sentinel.ErrConflict
		}
	}
	s.users[user.ID().String()] = user
	return nil
}

// Delete removes a user. Deleting an absent ID is a no-op.
func (s *MemoryUserStore) Delete(_ context.Context, id domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id.String())
	return nil
}

// MemoryRoleStore keeps roles in process memory.
type MemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[string]*domain.Role
}

// NewMemoryRoleStore creates an empty in-memory role store.
func NewMemoryRoleStore() *MemoryRoleStore {
	return &MemoryRoleStore{roles: make(map[string]*domain.Role)}
}

func (s *MemoryRoleStore) FindByID(_ context.Context, id domain.RoleID) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[id.String()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return role, nil
}

func (s *MemoryRoleStore) FindByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, role := range s.roles {
		if role.Name().Equals(name) {
			return role, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryRoleStore) Save(_ context.Context, role *domain.Role) error {
	if role == nil {
		return fmt.Errorf("role is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.roles {
		if existing.Name().Equals(role.Name()) && !existing.Equals(role) {
			return sentinel.ErrConflict
		}
	}
	s.roles[role.ID().String()] = role
	return nil
}

func (s *MemoryRoleStore) Delete(_ context.Context, id domain.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roles, id.String())
	return nil
}

// MemoryPermissionStore keeps permissions in process memory.
type MemoryPermissionStore struct {
	mu          sync.RWMutex
	permissions map[string]*domain.Permission
}

// NewMemoryPermissionStore creates an empty in-memory permission store.
func NewMemoryPermissionStore() *MemoryPermissionStore {
	return &MemoryPermissionStore{permissions: make(map[string]*domain.Permission)}
}

func (s *MemoryPermissionStore) FindByID(_ context.Context, id domain.PermissionID) (*domain.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	permission, ok := s.permissions[id.String()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return permission, nil
}

func (s *MemoryPermissionStore) FindByName(_ context.Context, name domain.PermissionName) (*domain.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, permission := range s.permissions {
		if permission.Name().Equals(name) {
			return permission, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryPermissionStore) Save(_ context.Context, permission *domain.Permission) error {
	if permission == nil {
		return fmt.Errorf("permission is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.permissions {
		if existing.Name().Equals(permission.Name()) && !existing.Equals(permission) {
			return sentinel.ErrConflict
		}
	}
	s.permissions[permission.ID().String()] = permission
	return nil
}

func (s *MemoryPermissionStore) Delete(_ context.Context, id domain.PermissionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.permissions, id.String())
	return nil
}
