// Package hasher implements password hashing for the auth service.
package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"clinicore/internal/auth/domain"
	dErrors "clinicore/pkg/domain-errors"
)

// ErrMismatch is returned by Compare when the password does not match the hash.
var ErrMismatch = errors.New("password does not match")

// PasswordHasher is the hashing contract consumed by the auth service.
type PasswordHasher interface {
	Hash(password string) (domain.PasswordHash, error)
	Compare(hash domain.PasswordHash, password string) error
}

// BcryptHasher hashes passwords with bcrypt at a configurable cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a bcrypt hasher. Costs outside the valid bcrypt
// range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash creates a bcrypt hash of the provided password.
func (h *BcryptHasher) Hash(password string) (domain.PasswordHash, error) {
	if password == "" {
		return domain.PasswordHash{}, dErrors.New(dErrors.CodeInvalidInput, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.PasswordHash{}, dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return domain.PasswordHash{}, fmt.Errorf("could not hash password: %w", err)
	}
	return domain.NewPasswordHash(string(hashed))
}

// Compare checks a plaintext password against a stored hash. Returns
// ErrMismatch on a wrong password so callers can fold it into their own
// credential error.
func (h *BcryptHasher) Compare(hash domain.PasswordHash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash.Value()), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("could not verify password: %w", err)
	}
	return nil
}
