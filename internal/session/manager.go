package session

import (
	"context"
	"errors"
	"time"

	"booktrack-backend/internal/database"
	"booktrack-backend/internal/models"
)

// DefaultLifetime is how long a session lives after creation or
// prolongation.
const DefaultLifetime = 24 * time.Hour

// Manager owns the session lifecycle: creation, lookup, prolongation,
// closure and the expiry sweep. It is the only component that mutates
// session records.
type Manager struct {
	store    Store
	users    UserDirectory
	lifetime time.Duration
}

// NewManager creates a session manager on top of the given store and
// user directory. A non-positive lifetime falls back to DefaultLifetime.
func NewManager(store Store, users UserDirectory, lifetime time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Manager{
		store:    store,
		users:    users,
		lifetime: lifetime,
	}
}

// Lifetime returns the configured session lifetime.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Create starts a new session for the user and returns its token.
func (m *Manager) Create(ctx context.Context, userID int64, userLogin string) (string, error) {
	if userLogin == "" {
		return "", ErrMissingLogin
	}

	token, err := NewToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	s := &models.Session{
		Token:     token,
		UserID:    userID,
		StartedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}

	if err := m.store.Insert(ctx, s); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve looks up the session and joins it with its owning user. The
// context is returned even when the session has expired; callers decide
// how to react to IsValid == false. A session whose user no longer
// exists resolves to ErrSessionNotFound.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.SessionContext, error) {
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &models.SessionContext{
		UserID:       user.ID,
		UserLogin:    user.Login,
		UserName:     user.Name,
		SessionID:    s.Token,
		SessionStart: s.StartedAt,
		SessionEnd:   s.ExpiresAt,
		IsValid:      s.Valid(time.Now()),
	}, nil
}

// Prolong pushes the session's expiry to now + lifetime. It does not
// check current validity; callers are expected to have done so. Returns
// ErrSessionNotFound when the session row no longer exists.
func (m *Manager) Prolong(ctx context.Context, token string) error {
	return m.store.UpdateExpiry(ctx, token, time.Now().Add(m.lifetime))
}

// Close makes the session immediately invalid by setting its expiry to
// now. The row stays in place until the next sweep. Closing an already
// closed session succeeds.
func (m *Manager) Close(ctx context.Context, token string) error {
	return m.store.UpdateExpiry(ctx, token, time.Now())
}

// SweepExpired deletes every session whose expiry has passed and
// returns the number of sessions removed. It is triggered after each
// successful login rather than on a timer.
func (m *Manager) SweepExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpiredBefore(ctx, time.Now())
}
