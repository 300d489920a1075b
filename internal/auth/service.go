package auth

import (
	"context"
	"errors"
	"time"

	"booktrack-backend/internal/database"
	"booktrack-backend/internal/models"
	"booktrack-backend/internal/session"
)

var (
	ErrMissingInput       = errors.New("login and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles authentication logic: credential verification and the
// login/logout flows around the session manager.
type Service struct {
	users    *database.UserRepo
	sessions *session.Manager
}

// NewService creates a new auth service
func NewService(users *database.UserRepo, sessions *session.Manager) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

// LoginResult represents a successful login
type LoginResult struct {
	Identity  models.Identity
	Token     string
	ExpiresAt time.Time
}

// Verify validates a login/password pair and returns the authenticated
// identity. The stored password hash never leaves this method.
func (s *Service) Verify(ctx context.Context, login, password string) (*models.Identity, error) {
	if login == "" || password == "" {
		return nil, ErrMissingInput
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	valid, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	return &models.Identity{
		ID:    user.ID,
		Login: user.Login,
		Name:  user.Name,
	}, nil
}

// Login authenticates the user, starts a new session and reaps expired
// sessions. The sweep runs here, after each successful login; there is
// no background timer.
func (s *Service) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	identity, err := s.Verify(ctx, login, password)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Create(ctx, identity.ID, identity.Login)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.SweepExpired(ctx); err != nil {
		return nil, err
	}

	return &LoginResult{
		Identity:  *identity,
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessions.Lifetime()),
	}, nil
}

// Logout closes the session. The row stays in place, already expired,
// until a later sweep deletes it.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Close(ctx, token)
}
