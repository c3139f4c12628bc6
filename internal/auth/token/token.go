// Package token issues and validates the tokens handed out at login: a
// signed JWT access token plus an opaque refresh token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"clinicore/internal/auth/domain"
	dErrors "clinicore/pkg/domain-errors"
	"clinicore/pkg/secrets"
)

// Claims carries the access token payload.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer is the token issuing contract consumed by the auth service.
type Issuer interface {
	IssueAccessToken(user *domain.User, now time.Time) (domain.JWTToken, error)
	IssueRefreshToken() (domain.RefreshToken, error)
}

// JWTIssuer signs HS256 access tokens and mints opaque refresh tokens.
type JWTIssuer struct {
	signingKey []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
}

// NewJWTIssuer constructs a token issuer.
func NewJWTIssuer(signingKey, issuer, audience string, accessTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
	}
}

// IssueAccessToken signs an access token for the user. Expiry is anchored on
// now so the caller controls the clock.
func (s *JWTIssuer) IssueAccessToken(user *domain.User, now time.Time) (domain.JWTToken, error) {
	if user == nil {
		return domain.JWTToken{}, dErrors.New(dErrors.CodeInternal, "user is required")
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   user.ID().String(),
		Username: user.Username().Value(),
		Email:    user.Email().Value(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			Subject:   user.ID().String(),
			ID:        uuid.NewString(),
		},
	})

	signed, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return domain.JWTToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not sign access token")
	}
	return domain.NewJWTToken(signed)
}

// IssueRefreshToken mints an opaque random refresh token. Lifetime is
// enforced by the refresh token store, not encoded in the token.
func (s *JWTIssuer) IssueRefreshToken() (domain.RefreshToken, error) {
	value, err := secrets.Generate()
	if err != nil {
		return domain.RefreshToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not generate refresh token")
	}
	return domain.NewRefreshToken(value)
}

// ValidateAccessToken parses and verifies a signed access token.
func (s *JWTIssuer) ValidateAccessToken(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
