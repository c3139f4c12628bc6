package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clinicore/internal/auth/domain"
	dErrors "clinicore/pkg/domain-errors"
)

type UserSuite struct {
	suite.Suite
	id       domain.UserID
	username domain.Username
	hash     domain.PasswordHash
	email    domain.Email
	now      time.Time
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserSuite))
}

func (s *UserSuite) SetupTest() {
	s.id = domain.NewUserID()
	s.username = domain.MustUsername("alice")
	s.hash = domain.MustPasswordHash("$2a$10$" + strings.Repeat("x", 53))
	s.email = domain.MustEmail("alice@example.com")
	s.now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func (s *UserSuite) TestConstructionInvariants() {
	s.Run("rejects zero user ID", func() {
		_, err := domain.NewUser(domain.UserID{}, s.username, s.hash, s.email, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects zero username", func() {
		_, err := domain.NewUser(s.id, domain.Username{}, s.hash, s.email, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects zero password hash", func() {
		_, err := domain.NewUser(s.id, s.username, domain.PasswordHash{}, s.email, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects zero email", func() {
		_, err := domain.NewUser(s.id, s.username, s.hash, domain.Email{}, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("accepts valid inputs with both timestamps at now", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)
		s.Equal(s.now, user.CreatedAt())
		s.Equal(s.now, user.UpdatedAt())
		s.False(user.IsLocked())
	})
}

func (s *UserSuite) TestChangeEmail() {
	later := s.now.Add(time.Hour)

	s.Run("replaces value and bumps updatedAt", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.ChangeEmail(domain.MustEmail("new@example.com"), later)
		s.Equal("new@example.com", user.Email().Value())
		s.Equal(later, user.UpdatedAt())
		s.Equal(s.now, user.CreatedAt())
	})

	s.Run("same value is a no-op", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.ChangeEmail(domain.MustEmail("ALICE@example.com"), later)
		s.Equal(s.now, user.UpdatedAt())
	})
}

func (s *UserSuite) TestChangeUsernameAndPassword() {
	later := s.now.Add(time.Hour)

	s.Run("username change bumps updatedAt", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.ChangeUsername(domain.MustUsername("bob"), later)
		s.Equal("bob", user.Username().Value())
		s.Equal(later, user.UpdatedAt())
	})

	s.Run("identical username is a no-op", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.ChangeUsername(s.username, later)
		s.Equal(s.now, user.UpdatedAt())
	})

	s.Run("password change bumps updatedAt", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		newHash := domain.MustPasswordHash("$2a$10$" + strings.Repeat("y", 53))
		user.ChangePassword(newHash, later)
		s.True(user.PasswordHash().Equals(newHash))
		s.Equal(later, user.UpdatedAt())
	})
}

func (s *UserSuite) TestLocking() {
	later := s.now.Add(time.Hour)
	evenLater := s.now.Add(2 * time.Hour)

	s.Run("lock sets the flag and bumps updatedAt", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.Lock(later)
		s.True(user.IsLocked())
		s.Equal(later, user.UpdatedAt())
	})

	s.Run("locking a locked account is a no-op", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.Lock(later)
		user.Lock(evenLater)
		s.Equal(later, user.UpdatedAt())
	})

	s.Run("unlock reverses lock", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.Lock(later)
		user.Unlock(evenLater)
		s.False(user.IsLocked())
		s.Equal(evenLater, user.UpdatedAt())
	})

	s.Run("unlocking an unlocked account is a no-op", func() {
		user, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		user.Unlock(later)
		s.Equal(s.now, user.UpdatedAt())
	})
}

func (s *UserSuite) TestIdentityEquality() {
	s.Run("same ID with different attributes is equal", func() {
		a, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)
		b, err := domain.NewUser(s.id, domain.MustUsername("bob"), s.hash, domain.MustEmail("bob@example.com"), s.now)
		s.Require().NoError(err)

		s.True(a.Equals(b))
	})

	s.Run("different IDs are not equal", func() {
		a, err := domain.NewUser(domain.NewUserID(), s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)
		b, err := domain.NewUser(domain.NewUserID(), s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)

		s.False(a.Equals(b))
	})

	s.Run("nil comparand is not equal", func() {
		a, err := domain.NewUser(s.id, s.username, s.hash, s.email, s.now)
		s.Require().NoError(err)
		s.False(a.Equals(nil))
	})
}

func (s *UserSuite) TestRehydration() {
	s.Run("preserves stored state", func() {
		created := s.now.Add(-48 * time.Hour)
		updated := s.now.Add(-time.Hour)

		user := domain.RehydrateUser(s.id, s.username, s.hash, s.email, true, created, updated)
		s.True(user.IsLocked())
		s.Equal(created, user.CreatedAt())
		s.Equal(updated, user.UpdatedAt())
	})
}
