package session

import (
	"context"
	"database/sql"
	"time"

	"booktrack-backend/internal/models"
)

// SQLiteStore persists sessions in the user_sessions table. Timestamps
// are stored as epoch milliseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a session store on top of an open database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var (
		rec        models.Session
		start, end int64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT sessionId, userId, sessionStart, sessionEnd
		FROM user_sessions WHERE sessionId = ?
	`, token).Scan(&rec.Token, &rec.UserID, &start, &end)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.StartedAt = time.UnixMilli(start)
	rec.ExpiresAt = time.UnixMilli(end)

	return &rec, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, rec *models.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_sessions (sessionId, userId, sessionStart, sessionEnd)
		VALUES (?, ?, ?, ?)
	`, rec.Token, rec.UserID, rec.StartedAt.UnixMilli(), rec.ExpiresAt.UnixMilli())
	return err
}

func (s *SQLiteStore) UpdateExpiry(ctx context.Context, token string, newEnd time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE user_sessions SET sessionEnd = ? WHERE sessionId = ?",
		newEnd.UnixMilli(), token,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (s *SQLiteStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE sessionEnd < ?",
		cutoff.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
