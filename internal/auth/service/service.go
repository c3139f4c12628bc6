// Package service orchestrates user registration and authentication.
//
// Login failures are deliberately indistinguishable: bad email shape,
// unknown account, wrong password, and locked account all surface the same
// unauthorized error so the endpoint cannot be used to enumerate accounts.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"clinicore/internal/audit"
	"clinicore/internal/auth/device"
	"clinicore/internal/auth/domain"
	"clinicore/internal/auth/hasher"
	"clinicore/internal/auth/store/refresh"
	"clinicore/internal/events"
	"clinicore/internal/platform/metrics"
	"clinicore/pkg/attrs"
	dErrors "clinicore/pkg/domain-errors"
	"clinicore/pkg/platform/sentinel"
	"clinicore/pkg/requestcontext"
)

const minPasswordLength = 8

// invalidCredentials is the single error returned for every login failure.
func invalidCredentials() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
}

// invalidRefreshToken is the single error returned for every refresh failure.
func invalidRefreshToken() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid refresh token")
}

// UserStore is the persistence seam consumed by the service.
type UserStore interface {
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	UsernameExists(ctx context.Context, username domain.Username) (bool, error)
	EmailExists(ctx context.Context, email domain.Email) (bool, error)
	Save(ctx context.Context, user *domain.User) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (domain.PasswordHash, error)
	Compare(hash domain.PasswordHash, password string) error
}

// TokenIssuer mints access and refresh tokens.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User, now time.Time) (domain.JWTToken, error)
	IssueRefreshToken() (domain.RefreshToken, error)
}

// RefreshTokenStore records issued refresh tokens and resolves presented
// ones. Find returns sentinel.ErrNotFound for unknown, revoked, or expired
// tokens.
type RefreshTokenStore interface {
	Save(ctx context.Context, token domain.RefreshToken, userID domain.UserID, issuedAt time.Time, ttl time.Duration) error
	Find(ctx context.Context, token domain.RefreshToken) (*refresh.Record, error)
	Revoke(ctx context.Context, token domain.RefreshToken) error
}

// AuditPublisher receives audit events emitted by the service.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates registration and login.
type Service struct {
	users          UserStore
	hasher         PasswordHasher
	tokens         TokenIssuer
	refreshTokens  RefreshTokenStore
	refreshTTL     time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher
	eventPublisher events.Publisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

// Option configures a Service.
type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithEventPublisher(publisher events.Publisher) Option {
	return func(s *Service) {
		s.eventPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRefreshTokenStore enables refresh token issuance at login.
func WithRefreshTokenStore(store RefreshTokenStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.refreshTokens = store
		s.refreshTTL = ttl
	}
}

// New constructs a Service.
func New(users UserStore, passwordHasher PasswordHasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:  users,
		hasher: passwordHasher,
		tokens: tokens,
		tracer: otel.Tracer("clinicore/auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterUserRequest carries the raw registration input.
type RegisterUserRequest struct {
	Username string
	Email    string
	Password string
}

// RegisterUserResult is returned on successful registration.
type RegisterUserResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// AuthenticateRequest carries the raw login input.
type AuthenticateRequest struct {
	Email    string
	Password string
}

// RefreshRequest carries the presented refresh token.
type RefreshRequest struct {
	RefreshToken string
}

// AuthenticateResult is returned on successful login.
type AuthenticateResult struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RegisterUser validates the input, enforces username and email uniqueness,
// hashes the password, and persists a new user.
func (s *Service) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterUserResult, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterUser")
	defer span.End()

	if len(req.Password) < minPasswordLength {
		return nil, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	username, err := domain.NewUsername(req.Username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid username")
	}
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid email")
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check username")
	}
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "username is already taken")
	}
	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email")
	}
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := requestcontext.Now(ctx)
	user, err := domain.NewUser(domain.NewUserID(), username, passwordHash, email, now)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "username or email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}

	if err := s.publishEvent(ctx, domain.NewUserRegisteredEvent(user.ID(), username, email, now)); err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.ActionUserRegistered,
		"subject", user.ID().String(), "email", email.Value())
	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}

	return &RegisterUserResult{
		UserID:   user.ID().String(),
		Username: username.Value(),
		Email:    email.Value(),
		Message:  "user registered successfully",
	}, nil
}

// Authenticate verifies credentials and issues tokens. Every failure path
// before token issuance folds into the same unauthorized error.
func (s *Service) Authenticate(ctx context.Context, req AuthenticateRequest) (*AuthenticateResult, error) {
	ctx, span := s.tracer.Start(ctx, "Authenticate")
	defer span.End()

	email, err := domain.NewEmail(req.Email)
	if err != nil {
		s.recordLoginFailure(ctx, req.Email, "malformed email")
		return nil, invalidCredentials()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.recordLoginFailure(ctx, email.Value(), "unknown account")
			return nil, invalidCredentials()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := s.hasher.Compare(user.PasswordHash(), req.Password); err != nil {
		if errors.Is(err, hasher.ErrMismatch) {
			s.recordLoginFailure(ctx, email.Value(), "wrong password")
			return nil, invalidCredentials()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	if user.IsLocked() {
		s.recordLoginFailure(ctx, email.Value(), "account locked")
		return nil, invalidCredentials()
	}

	now := requestcontext.Now(ctx)
	accessToken, err := s.tokens.IssueAccessToken(user, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}

	result := &AuthenticateResult{
		UserID:      user.ID().String(),
		Username:    user.Username().Value(),
		Email:       user.Email().Value(),
		AccessToken: accessToken.Value(),
	}

	if s.refreshTokens != nil {
		refreshToken, err := s.tokens.IssueRefreshToken()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue refresh token")
		}
		if err := s.refreshTokens.Save(ctx, refreshToken, user.ID(), now, s.refreshTTL); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record refresh token")
		}
		result.RefreshToken = refreshToken.Value()
	}

	deviceName := device.ParseUserAgent(requestcontext.UserAgent(ctx))
	if err := s.publishEvent(ctx, domain.NewUserLoggedInEvent(user.ID(), user.Email(), deviceName, now)); err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.ActionLoginSucceeded,
		"subject", user.ID().String(), "email", user.Email().Value(), "device", deviceName)
	if s.metrics != nil {
		s.metrics.LoginsSucceeded.Inc()
	}

	return result, nil
}

// Refresh exchanges a valid refresh token for a new access token, rotating
// the refresh token in the process. Every failure path folds into the same
// unauthorized error so the endpoint leaks nothing about stored tokens.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*AuthenticateResult, error) {
	ctx, span := s.tracer.Start(ctx, "Refresh")
	defer span.End()

	if s.refreshTokens == nil {
		s.recordRefreshFailure(ctx, "refresh tokens disabled")
		return nil, invalidRefreshToken()
	}

	presented, err := domain.NewRefreshToken(req.RefreshToken)
	if err != nil {
		s.recordRefreshFailure(ctx, "malformed token")
		return nil, invalidRefreshToken()
	}

	record, err := s.refreshTokens.Find(ctx, presented)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.recordRefreshFailure(ctx, "unknown token")
			return nil, invalidRefreshToken()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load refresh token")
	}

	userID, err := domain.ParseUserID(record.UserID)
	if err != nil {
		s.recordRefreshFailure(ctx, "corrupt token record")
		return nil, invalidRefreshToken()
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.recordRefreshFailure(ctx, "user gone")
			return nil, invalidRefreshToken()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if user.IsLocked() {
		s.recordRefreshFailure(ctx, "account locked")
		return nil, invalidRefreshToken()
	}

	now := requestcontext.Now(ctx)
	accessToken, err := s.tokens.IssueAccessToken(user, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	rotated, err := s.tokens.IssueRefreshToken()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue refresh token")
	}

	// Rotation: the presented token dies before its replacement is stored,
	// so a replayed token can never mint a second session.
	if err := s.refreshTokens.Revoke(ctx, presented); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke refresh token")
	}
	if err := s.refreshTokens.Save(ctx, rotated, user.ID(), now, s.refreshTTL); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record refresh token")
	}

	s.logAudit(ctx, audit.ActionTokenRefreshed,
		"subject", user.ID().String(), "email", user.Email().Value())
	if s.metrics != nil {
		s.metrics.TokensRefreshed.Inc()
	}

	return &AuthenticateResult{
		UserID:       user.ID().String(),
		Username:     user.Username().Value(),
		Email:        user.Email().Value(),
		AccessToken:  accessToken.Value(),
		RefreshToken: rotated.Value(),
	}, nil
}

func (s *Service) recordRefreshFailure(ctx context.Context, reason string) {
	s.logAudit(ctx, audit.ActionRefreshFailed, "reason", reason)
	if s.metrics != nil {
		s.metrics.LoginsFailed.Inc()
	}
}

func (s *Service) recordLoginFailure(ctx context.Context, email, reason string) {
	s.logAudit(ctx, audit.ActionLoginFailed,
		"subject", email, "email", email, "reason", reason)
	if s.metrics != nil {
		s.metrics.LoginsFailed.Inc()
	}
}

// publishEvent awaits the publisher; a failure surfaces to the caller even
// though the preceding save is not rolled back.
func (s *Service) publishEvent(ctx context.Context, event events.Event) error {
	if s.eventPublisher == nil {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to publish event",
				"event", event.EventName(), "error", err)
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to publish event")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if s.logger != nil {
		args := append(attributes, "event", string(action), "log_type", "audit")
		s.logger.InfoContext(ctx, string(action), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    action,
		Subject:   attrs.ExtractString(attributes, "subject"),
		Email:     attrs.ExtractString(attributes, "email"),
		Device:    attrs.ExtractString(attributes, "device"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
	})
}
