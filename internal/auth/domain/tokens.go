package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidJWTToken indicates an access token failed structural validation.
	ErrInvalidJWTToken = errors.New("invalid JWT token")
	// ErrInvalidRefreshToken indicates a refresh token failed validation.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// JWTToken is a structurally valid (header.payload.signature) access token.
// Validation is shape-only; cryptographic verification belongs to the token
// issuer infrastructure.
type JWTToken struct {
	value string
}

// NewJWTToken creates a validated JWTToken.
func NewJWTToken(raw string) (JWTToken, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return JWTToken{}, fmt.Errorf("JWT token cannot be empty: %w", ErrInvalidJWTToken)
	}
	if len(strings.Split(trimmed, ".")) != 3 {
		return JWTToken{}, fmt.Errorf("JWT token must have 3 dot-separated segments: %w", ErrInvalidJWTToken)
	}
	return JWTToken{value: trimmed}, nil
}

// Value returns the raw token.
func (t JWTToken) Value() string { return t.value }

// IsZero returns true if this is the zero value (uninitialized).
func (t JWTToken) IsZero() bool { return t.value == "" }

// Equals compares by value; a zero JWTToken equals nothing.
func (t JWTToken) Equals(other JWTToken) bool {
	return !t.IsZero() && t.value == other.value
}

// RefreshToken is an opaque, non-empty token string.
type RefreshToken struct {
	value string
}

// NewRefreshToken creates a validated RefreshToken.
func NewRefreshToken(raw string) (RefreshToken, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RefreshToken{}, fmt.Errorf("refresh token cannot be empty: %w", ErrInvalidRefreshToken)
	}
	return RefreshToken{value: trimmed}, nil
}

// Value returns the raw token.
func (t RefreshToken) Value() string { return t.value }

// IsZero returns true if this is the zero value (uninitialized).
func (t RefreshToken) IsZero() bool { return t.value == "" }

// Equals compares by value; a zero RefreshToken equals nothing.
func (t RefreshToken) Equals(other RefreshToken) bool {
	return !t.IsZero() && t.value == other.value
}
