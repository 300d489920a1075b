package models

import "time"

// Session is a stored user session row. Token is the primary key; it is
// the opaque value the client presents on every request.
type Session struct {
	Token     string    `json:"sessionId"`
	UserID    int64     `json:"userId"`
	StartedAt time.Time `json:"sessionStart"`
	ExpiresAt time.Time `json:"sessionEnd"`
}

// Valid reports whether the session has not yet expired at the given
// instant. Validity is always derived from ExpiresAt, never stored.
func (s *Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// SessionContext is the request-scoped view of a resolved session,
// joined with the owning user. It is computed fresh on every lookup.
type SessionContext struct {
	UserID       int64     `json:"userId"`
	UserLogin    string    `json:"userLogin"`
	UserName     string    `json:"userName"`
	SessionID    string    `json:"sessionId"`
	SessionStart time.Time `json:"sessionStart"`
	SessionEnd   time.Time `json:"sessionEnd"`
	IsValid      bool      `json:"isValid"`
}
