//go:build integration

package refresh_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clinicore/internal/auth/domain"
	"clinicore/internal/auth/store/refresh"
	"clinicore/pkg/platform/sentinel"
	"clinicore/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	ctx       context.Context
	container *containers.RedisContainer
	store     *refresh.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewRedisContainer(s.T())
	s.store = refresh.NewRedisStore(s.container.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(s.ctx))
}

func (s *RedisStoreSuite) token(value string) domain.RefreshToken {
	token, err := domain.NewRefreshToken(value)
	s.Require().NoError(err)
	return token
}

func (s *RedisStoreSuite) TestRoundTrip() {
	userID := domain.NewUserID()
	issuedAt := time.Now().UTC().Truncate(time.Second)
	token := s.token("opaque-token")

	s.Require().NoError(s.store.Save(s.ctx, token, userID, issuedAt, time.Hour))

	record, err := s.store.Find(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(userID.String(), record.UserID)
	s.True(record.ExpiresAt.Equal(issuedAt.Add(time.Hour)))
}

func (s *RedisStoreSuite) TestUnknownToken() {
	_, err := s.store.Find(s.ctx, s.token("missing"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestTTLExpiry() {
	token := s.token("short-lived")
	s.Require().NoError(s.store.Save(s.ctx, token, domain.NewUserID(), time.Now(), time.Second))

	time.Sleep(1500 * time.Millisecond)

	_, err := s.store.Find(s.ctx, token)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestRevoke() {
	token := s.token("revocable")
	s.Require().NoError(s.store.Save(s.ctx, token, domain.NewUserID(), time.Now(), time.Hour))
	s.Require().NoError(s.store.Revoke(s.ctx, token))

	_, err := s.store.Find(s.ctx, token)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
