package hasher_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"clinicore/internal/auth/hasher"
	dErrors "clinicore/pkg/domain-errors"
)

type BcryptHasherSuite struct {
	suite.Suite
	hasher *hasher.BcryptHasher
}

func TestBcryptHasherSuite(t *testing.T) {
	suite.Run(t, new(BcryptHasherSuite))
}

func (s *BcryptHasherSuite) SetupSuite() {
	// MinCost keeps the suite fast; production uses the configured cost.
	s.hasher = hasher.NewBcryptHasher(bcrypt.MinCost)
}

func (s *BcryptHasherSuite) TestHash() {
	s.Run("rejects empty password", func() {
		_, err := s.hasher.Hash("")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("produces a valid 60-character hash", func() {
		hash, err := s.hasher.Hash("correct horse battery staple")
		s.Require().NoError(err)
		s.Len(hash.Value(), 60)
	})

	s.Run("same password hashes to different values", func() {
		first, err := s.hasher.Hash("password123")
		s.Require().NoError(err)
		second, err := s.hasher.Hash("password123")
		s.Require().NoError(err)
		s.False(first.Equals(second))
	})
}

func (s *BcryptHasherSuite) TestCompare() {
	hash, err := s.hasher.Hash("password123")
	s.Require().NoError(err)

	s.Run("matching password verifies", func() {
		s.NoError(s.hasher.Compare(hash, "password123"))
	})

	s.Run("wrong password returns ErrMismatch", func() {
		err := s.hasher.Compare(hash, "wrong-password")
		s.ErrorIs(err, hasher.ErrMismatch)
	})
}

func (s *BcryptHasherSuite) TestCostFallback() {
	s.Run("out-of-range cost still hashes", func() {
		h := hasher.NewBcryptHasher(99)
		hash, err := h.Hash("password123")
		s.Require().NoError(err)
		s.NoError(h.Compare(hash, "password123"))
	})
}
