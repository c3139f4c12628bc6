package refresh

import (
	"context"
	"sync"
	"time"

	"clinicore/internal/auth/domain"
	"clinicore/pkg/platform/sentinel"
)

// MemoryStore keeps refresh tokens in process memory. Expiry is checked on
// read; expired entries are dropped lazily.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Record
}

// NewMemoryStore creates an empty in-memory refresh token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]Record)}
}

func (s *MemoryStore) Save(_ context.Context, token domain.RefreshToken, userID domain.UserID, issuedAt time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Value()] = Record{
		Token:     token.Value(),
		UserID:    userID.String(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Find(_ context.Context, token domain.RefreshToken) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tokens[token.Value()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if time.Now().After(record.ExpiresAt) {
		delete(s.tokens, token.Value())
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token.Value())
	return nil
}
