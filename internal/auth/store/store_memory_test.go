package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clinicore/internal/auth/domain"
	"clinicore/internal/auth/store"
	"clinicore/pkg/platform/sentinel"
)

type MemoryUserStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.MemoryUserStore
	now   time.Time
}

func TestMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryUserStoreSuite))
}

func (s *MemoryUserStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewMemoryUserStore()
	s.now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func (s *MemoryUserStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *MemoryUserStoreSuite) newUser(username, email string) *domain.User {
	user, err := domain.NewUser(
		domain.NewUserID(),
		domain.MustUsername(username),
		domain.MustPasswordHash("$2a$10$"+strings.Repeat("x", 53)),
		domain.MustEmail(email),
		s.now,
	)
	s.Require().NoError(err)
	return user
}

func (s *MemoryUserStoreSuite) TestLookups() {
	s.Run("unknown id returns ErrNotFound", func() {
		_, err := s.store.FindByID(s.ctx, domain.NewUserID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("finds by id, username, and email", func() {
		user := s.newUser("alice", "alice@example.com")
		s.Require().NoError(s.store.Save(s.ctx, user))

		byID, err := s.store.FindByID(s.ctx, user.ID())
		s.Require().NoError(err)
		s.True(byID.Equals(user))

		byUsername, err := s.store.FindByUsername(s.ctx, domain.MustUsername("alice"))
		s.Require().NoError(err)
		s.True(byUsername.Equals(user))

		byEmail, err := s.store.FindByEmail(s.ctx, domain.MustEmail("ALICE@example.com"))
		s.Require().NoError(err)
		s.True(byEmail.Equals(user))
	})
}

func (s *MemoryUserStoreSuite) TestSaveUpsert() {
	s.Run("saving the same user twice keeps one entry", func() {
		user := s.newUser("alice", "alice@example.com")
		s.Require().NoError(s.store.Save(s.ctx, user))

		user.ChangeEmail(domain.MustEmail("alice.new@example.com"), s.now.Add(time.Hour))
		s.Require().NoError(s.store.Save(s.ctx, user))

		found, err := s.store.FindByID(s.ctx, user.ID())
		s.Require().NoError(err)
		s.Equal("alice.new@example.com", found.Email().Value())
	})

	s.Run("rejects duplicate username", func() {
		s.Require().NoError(s.store.Save(s.ctx, s.newUser("alice", "alice@example.com")))

		err := s.store.Save(s.ctx, s.newUser("alice", "other@example.com"))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejects duplicate email", func() {
		s.Require().NoError(s.store.Save(s.ctx, s.newUser("alice", "alice@example.com")))

		err := s.store.Save(s.ctx, s.newUser("bob", "alice@example.com"))
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *MemoryUserStoreSuite) TestExistenceChecks() {
	s.Run("reflect saved users", func() {
		exists, err := s.store.UsernameExists(s.ctx, domain.MustUsername("alice"))
		s.Require().NoError(err)
		s.False(exists)

		s.Require().NoError(s.store.Save(s.ctx, s.newUser("alice", "alice@example.com")))

		exists, err = s.store.UsernameExists(s.ctx, domain.MustUsername("alice"))
		s.Require().NoError(err)
		s.True(exists)

		exists, err = s.store.EmailExists(s.ctx, domain.MustEmail("alice@example.com"))
		s.Require().NoError(err)
		s.True(exists)
	})
}

func (s *MemoryUserStoreSuite) TestDelete() {
	s.Run("removes a saved user", func() {
		user := s.newUser("alice", "alice@example.com")
		s.Require().NoError(s.store.Save(s.ctx, user))
		s.Require().NoError(s.store.Delete(s.ctx, user.ID()))

		_, err := s.store.FindByID(s.ctx, user.ID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("deleting an absent id is a no-op", func() {
		s.NoError(s.store.Delete(s.ctx, domain.NewUserID()))
	})
}

type MemoryRoleStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.MemoryRoleStore
	now   time.Time
}

func TestMemoryRoleStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryRoleStoreSuite))
}

func (s *MemoryRoleStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewMemoryRoleStore()
	s.now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func (s *MemoryRoleStoreSuite) TestSaveAndFind() {
	name, err := domain.NewRoleName("clinician")
	s.Require().NoError(err)
	desc, err := domain.NewRoleDescription("attends registered patients")
	s.Require().NoError(err)
	role, err := domain.NewRole(domain.NewRoleID(), name, desc, s.now)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Save(s.ctx, role))

	byName, err := s.store.FindByName(s.ctx, name)
	s.Require().NoError(err)
	s.True(byName.Equals(role))

	_, err = s.store.FindByID(s.ctx, domain.NewRoleID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
