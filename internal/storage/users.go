package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const userColumns = `id, email, name, password_hash, share_token, created_at`

// CreateUser inserts a new user with a freshly generated share token.
func (db *DB) CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	token, err := NewToken(24)
	if err != nil {
		return nil, err
	}

	row := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, share_token)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		email, name, passwordHash, token)
	return scanUser(row)
}

// GetUserByEmail looks a user up by (already lowercased) email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetUserByID looks a user up by primary key.
func (db *DB) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserByShareToken resolves the coach-view token to its owner.
func (db *DB) GetUserByShareToken(ctx context.Context, token string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE share_token = $1`, token)
	return scanUser(row)
}

// RotateShareToken replaces a user's share token, invalidating previously
// shared coach links. Returns the new token.
func (db *DB) RotateShareToken(ctx context.Context, userID int) (string, error) {
	token, err := NewToken(24)
	if err != nil {
		return "", err
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET share_token = $1 WHERE id = $2`, token, userID)
	if err != nil {
		return "", fmt.Errorf("rotating share token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", ErrNotFound
	}
	return token, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.ShareToken, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}
