// Package service implements the application's business logic on top of the store.
package service

import (
	"context"
	"log/slog"

	"github.com/resonateapp/resonate-server/internal/auth"
	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/domain"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
	"github.com/resonateapp/resonate-server/internal/id"
	"github.com/resonateapp/resonate-server/internal/store"
	"github.com/resonateapp/resonate-server/internal/validation"
)

// AuthService handles registration, login, and catalog credential acquisition.
type AuthService struct {
	store     *store.Store
	tokens    *auth.TokenService
	broker    *catalog.Broker
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(s *store.Store, tokens *auth.TokenService, broker *catalog.Broker, v *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     s,
		tokens:    tokens,
		broker:    broker,
		validator: v,
		logger:    logger,
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Role     string `json:"role" validate:"omitempty,oneof=listener artist"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	User        *domain.User
	AccessToken string
	// Credential for the upstream catalog, handed to the client as a cookie.
	Credential *catalog.Credential
}

// Register creates a new account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid password")
	}

	role := domain.RoleListener
	if req.Role == string(domain.RoleArtist) {
		role = domain.RoleArtist
	}

	user := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PhotoPath:    domain.DefaultPhotoPath,
		Role:         role,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session. The same invalid
// credentials error covers unknown emails and wrong passwords.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	return s.openSession(ctx, user)
}

// openSession mints an access token and acquires a catalog credential.
// The credential is best effort: catalog routes fail with their own error
// when it is absent, and login should not depend on the upstream being up.
func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*Session, error) {
	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "could not create session")
	}

	cred, err := s.broker.Acquire(ctx)
	if err != nil {
		s.logger.Warn("catalog credential unavailable at login", "user_id", user.ID, "error", err)
		cred = nil
	}

	// The session never carries the password hash out of the service.
	clean := user.Sanitized()

	return &Session{User: &clean, AccessToken: token, Credential: cred}, nil
}
