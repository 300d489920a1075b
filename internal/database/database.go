package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path string
}

// Open initializes the database connection and runs migrations. The
// returned handle is passed explicitly to the repositories; there is no
// package-level connection.
func Open(cfg Config) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if err := runMigration(db, m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

type migration struct {
	name string
	up   string
}

func runMigration(db *sql.DB, m migration) error {
	// Check if already applied
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := db.Exec(m.up); err != nil {
		return err
	}

	_, err = db.Exec("INSERT INTO migrations (name) VALUES (?)", m.name)
	return err
}

var migrations = []migration{
	{
		name: "001_create_users",
		up: `
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				login TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				passwordHash TEXT NOT NULL
			);
			CREATE INDEX idx_users_login ON users(login);
		`,
	},
	{
		name: "002_create_user_sessions",
		up: `
			CREATE TABLE user_sessions (
				sessionId TEXT PRIMARY KEY,
				userId INTEGER NOT NULL,
				sessionStart INTEGER NOT NULL,
				sessionEnd INTEGER NOT NULL,
				FOREIGN KEY (userId) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_user_sessions_user_id ON user_sessions(userId);
			CREATE INDEX idx_user_sessions_session_end ON user_sessions(sessionEnd);
		`,
	},
	{
		name: "003_create_books",
		up: `
			CREATE TABLE books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				originalTitle TEXT,
				author TEXT NOT NULL,
				originalAuthor TEXT,
				publicationYear INTEGER NOT NULL,
				coverImageLink TEXT,
				annotation TEXT
			);
			CREATE TABLE user_books (
				userId INTEGER NOT NULL,
				bookId INTEGER NOT NULL,
				readStatus TEXT,
				rating INTEGER,
				comment TEXT,
				insertedAt DATETIME NOT NULL,
				updatedAt DATETIME NOT NULL,
				PRIMARY KEY (userId, bookId),
				FOREIGN KEY (userId) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (bookId) REFERENCES books(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_user_books_user_id ON user_books(userId);
		`,
	},
}
