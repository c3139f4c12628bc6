package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clinicore/internal/auth/domain"
	"clinicore/pkg/platform/sentinel"
)

// Redis key prefix for refresh tokens.
const refreshTokenKeyPrefix = "auth:refresh:"

// RedisStore is the production refresh token store. Expiry rides on the Redis
// key TTL, so expired tokens disappear without a sweeper.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed refresh token store. The client
// lifecycle is managed externally.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, token domain.RefreshToken, userID domain.UserID, issuedAt time.Time, ttl time.Duration) error {
	record := Record{
		Token:     token.Value(),
		UserID:    userID.String(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal refresh token record: %w", err)
	}
	if err := s.client.Set(ctx, refreshTokenKeyPrefix+token.Value(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, token domain.RefreshToken) (*Record, error) {
	payload, err := s.client.Get(ctx, refreshTokenKeyPrefix+token.Value()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal refresh token record: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token domain.RefreshToken) error {
	if err := s.client.Del(ctx, refreshTokenKeyPrefix+token.Value()).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
