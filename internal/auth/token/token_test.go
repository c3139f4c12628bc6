package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clinicore/internal/auth/domain"
	"clinicore/internal/auth/token"
	dErrors "clinicore/pkg/domain-errors"
)

type JWTIssuerSuite struct {
	suite.Suite
	issuer *token.JWTIssuer
	user   *domain.User
	now    time.Time
}

func TestJWTIssuerSuite(t *testing.T) {
	suite.Run(t, new(JWTIssuerSuite))
}

func (s *JWTIssuerSuite) SetupTest() {
	s.now = time.Now()
	s.issuer = token.NewJWTIssuer("test-signing-key", "clinicore", "clinicore-api", 15*time.Minute)

	user, err := domain.NewUser(
		domain.NewUserID(),
		domain.MustUsername("alice"),
		domain.MustPasswordHash("$2a$10$"+strings.Repeat("x", 53)),
		domain.MustEmail("alice@example.com"),
		s.now,
	)
	s.Require().NoError(err)
	s.user = user
}

func (s *JWTIssuerSuite) TestIssueAccessToken() {
	s.Run("rejects nil user", func() {
		_, err := s.issuer.IssueAccessToken(nil, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("issues a validatable token", func() {
		issued, err := s.issuer.IssueAccessToken(s.user, s.now)
		s.Require().NoError(err)

		claims, err := s.issuer.ValidateAccessToken(issued.Value())
		s.Require().NoError(err)
		s.Equal(s.user.ID().String(), claims.UserID)
		s.Equal("alice", claims.Username)
		s.Equal("alice@example.com", claims.Email)
		s.Equal("clinicore", claims.Issuer)
		s.NotEmpty(claims.ID)
	})

	s.Run("consecutive tokens carry distinct jtis", func() {
		first, err := s.issuer.IssueAccessToken(s.user, s.now)
		s.Require().NoError(err)
		second, err := s.issuer.IssueAccessToken(s.user, s.now)
		s.Require().NoError(err)

		firstClaims, err := s.issuer.ValidateAccessToken(first.Value())
		s.Require().NoError(err)
		secondClaims, err := s.issuer.ValidateAccessToken(second.Value())
		s.Require().NoError(err)
		s.NotEqual(firstClaims.ID, secondClaims.ID)
	})
}

func (s *JWTIssuerSuite) TestValidateAccessToken() {
	s.Run("rejects an expired token", func() {
		past := s.now.Add(-time.Hour)
		issued, err := s.issuer.IssueAccessToken(s.user, past)
		s.Require().NoError(err)

		_, err = s.issuer.ValidateAccessToken(issued.Value())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects a token signed with another key", func() {
		other := token.NewJWTIssuer("different-key", "clinicore", "clinicore-api", 15*time.Minute)
		issued, err := other.IssueAccessToken(s.user, s.now)
		s.Require().NoError(err)

		_, err = s.issuer.ValidateAccessToken(issued.Value())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects garbage input", func() {
		_, err := s.issuer.ValidateAccessToken("not-a-token")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *JWTIssuerSuite) TestIssueRefreshToken() {
	s.Run("tokens are opaque and unique", func() {
		first, err := s.issuer.IssueRefreshToken()
		s.Require().NoError(err)
		second, err := s.issuer.IssueRefreshToken()
		s.Require().NoError(err)

		s.NotEmpty(first.Value())
		s.False(first.Equals(second))
		s.NotContains(first.Value(), ".")
	})
}
