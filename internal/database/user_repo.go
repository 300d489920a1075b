package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"booktrack-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepo handles user database operations. The user table is
// read-only from the auth core's perspective; Create exists only for
// bootstrap and seeding.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create creates a new user
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (login, name, passwordHash)
		VALUES (?, ?, ?)
	`, user.Login, user.Name, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.login") {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, login, name, passwordHash
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Login, &user.Name, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByLogin retrieves a user by login name
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, login, name, passwordHash
		FROM users WHERE login = ?
	`, login).Scan(&user.ID, &user.Login, &user.Name, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Count returns the total number of users
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
