package domain

import (
	"time"

	dErrors "clinicore/pkg/domain-errors"
)

// User is the authentication aggregate. Identity is the UserID; all other
// fields may change over time. Mutators follow one discipline: no-op when the
// new value equals the current one, otherwise replace and bump updatedAt.
type User struct {
	id           UserID
	username     Username
	passwordHash PasswordHash
	email        Email
	locked       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a freshly registered User. Both timestamps start at now.
func NewUser(id UserID, username Username, passwordHash PasswordHash, email Email, now time.Time) (*User, error) {
	if id.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user ID is required")
	}
	if username.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "username is required")
	}
	if passwordHash.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash is required")
	}
	if email.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is required")
	}
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		email:        email,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// RehydrateUser reconstructs a User from persisted state. No invariant checks
// beyond the value objects themselves; stored state is trusted.
func RehydrateUser(id UserID, username Username, passwordHash PasswordHash, email Email, locked bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		email:        email,
		locked:       locked,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ChangeUsername replaces the username unless it is unchanged.
func (u *User) ChangeUsername(username Username, now time.Time) {
	if u.username.Equals(username) {
		return
	}
	u.username = username
	u.updatedAt = now
}

// ChangeEmail replaces the email unless it is unchanged.
func (u *User) ChangeEmail(email Email, now time.Time) {
	if u.email.Equals(email) {
		return
	}
	u.email = email
	u.updatedAt = now
}

// ChangePassword replaces the password hash unless it is unchanged.
func (u *User) ChangePassword(passwordHash PasswordHash, now time.Time) {
	if u.passwordHash.Equals(passwordHash) {
		return
	}
	u.passwordHash = passwordHash
	u.updatedAt = now
}

// Lock marks the account locked. Idempotent: locking a locked account does
// not bump updatedAt.
func (u *User) Lock(now time.Time) {
	if u.locked {
		return
	}
	u.locked = true
	u.updatedAt = now
}

// Unlock clears the locked flag. Idempotent like Lock.
func (u *User) Unlock(now time.Time) {
	if !u.locked {
		return
	}
	u.locked = false
	u.updatedAt = now
}

// Equals is identity-based: two Users are equal iff their IDs are equal.
func (u *User) Equals(other *User) bool {
	if other == nil {
		return false
	}
	return u.id.Equals(other.id)
}

func (u *User) ID() UserID                 { return u.id }
func (u *User) Username() Username         { return u.username }
func (u *User) PasswordHash() PasswordHash { return u.passwordHash }
func (u *User) Email() Email               { return u.email }
func (u *User) IsLocked() bool             { return u.locked }
func (u *User) CreatedAt() time.Time       { return u.createdAt }
func (u *User) UpdatedAt() time.Time       { return u.updatedAt }
