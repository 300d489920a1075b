package session

import (
	"context"
	"errors"
	"time"

	"booktrack-backend/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMissingLogin    = errors.New("user login is required")
)

// Store is the durable keyed storage of session records. Implementations
// must be safe for concurrent use; each call is atomic with respect to
// other calls on the same token.
type Store interface {
	// Get returns the session for the given token, or ErrSessionNotFound
	// when no record exists. Expired records are still returned; callers
	// derive validity themselves.
	Get(ctx context.Context, token string) (*models.Session, error)

	// Insert stores a new session record.
	Insert(ctx context.Context, s *models.Session) error

	// UpdateExpiry sets the session's expiry to newEnd. Returns
	// ErrSessionNotFound when no record was affected.
	UpdateExpiry(ctx context.Context, token string, newEnd time.Time) error

	// DeleteExpiredBefore removes every record whose expiry lies before
	// cutoff and returns the number of records removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserDirectory is the read-only user lookup the manager joins against
// when resolving a session to its owner.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
