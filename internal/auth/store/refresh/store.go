// Package refresh persists opaque refresh tokens keyed by token value.
// Entries expire after the configured TTL.
package refresh

import (
	"context"
	"time"

	"clinicore/internal/auth/domain"
)

// Record ties a refresh token to the user it was issued for.
type Record struct {
	Token     string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Store is the refresh token persistence contract. Find returns
// sentinel.ErrNotFound for unknown, revoked, or expired tokens.
type Store interface {
	Save(ctx context.Context, token domain.RefreshToken, userID domain.UserID, issuedAt time.Time, ttl time.Duration) error
	Find(ctx context.Context, token domain.RefreshToken) (*Record, error)
	Revoke(ctx context.Context, token domain.RefreshToken) error
}
