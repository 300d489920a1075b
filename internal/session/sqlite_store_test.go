package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"booktrack-backend/internal/database"
	"booktrack-backend/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	// Session rows need an owning user.
	users := database.NewUserRepo(db)
	err = users.Create(context.Background(), &models.User{
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatal(err)
	}

	return db
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	now := time.Now()
	rec := &models.Session{
		Token:     "token-1",
		UserID:    1,
		StartedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "token-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Token != rec.Token || got.UserID != rec.UserID {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	// Storage granularity is epoch milliseconds.
	if got.StartedAt.UnixMilli() != rec.StartedAt.UnixMilli() {
		t.Errorf("sessionStart = %v, want %v", got.StartedAt, rec.StartedAt)
	}
	if got.ExpiresAt.UnixMilli() != rec.ExpiresAt.UnixMilli() {
		t.Errorf("sessionEnd = %v, want %v", got.ExpiresAt, rec.ExpiresAt)
	}
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSQLiteStoreUpdateExpiry(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	now := time.Now()
	if err := store.Insert(ctx, &models.Session{
		Token:     "token-1",
		UserID:    1,
		StartedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	newEnd := now.Add(24 * time.Hour)
	if err := store.UpdateExpiry(ctx, "token-1", newEnd); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "token-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ExpiresAt.UnixMilli() != newEnd.UnixMilli() {
		t.Errorf("sessionEnd = %v, want %v", got.ExpiresAt, newEnd)
	}

	// Zero-row updates must be detected and surfaced.
	err = store.UpdateExpiry(ctx, "missing", newEnd)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSQLiteStoreDeleteExpiredBefore(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	now := time.Now()
	sessions := []*models.Session{
		{Token: "live", UserID: 1, StartedAt: now, ExpiresAt: now.Add(time.Hour)},
		{Token: "dead-1", UserID: 1, StartedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{Token: "dead-2", UserID: 1, StartedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
	}
	for _, s := range sessions {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	count, err := store.DeleteExpiredBefore(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("deleted %d rows, want 2", count)
	}

	if _, err := store.Get(ctx, "live"); err != nil {
		t.Errorf("live session should remain, got %v", err)
	}
	if _, err := store.Get(ctx, "dead-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected dead-1 to be deleted, got %v", err)
	}
}
