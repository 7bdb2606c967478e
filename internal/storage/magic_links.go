package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreateMagicLink issues a single-use login token for the email address
// and returns it.
func (db *DB) CreateMagicLink(ctx context.Context, email string) (string, error) {
	token, err := NewToken(32)
	if err != nil {
		return "", err
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO magic_links (token, email) VALUES ($1, $2)`,
		token, email)
	if err != nil {
		return "", fmt.Errorf("creating magic link: %w", err)
	}
	return token, nil
}

// ConsumeMagicLink marks a magic link as used and returns its email.
// Tokens that are unknown, already used, or older than ttl resolve to
// ErrNotFound.
func (db *DB) ConsumeMagicLink(ctx context.Context, token string, ttl time.Duration) (string, error) {
	var email string
	err := db.Pool.QueryRow(ctx, `
		UPDATE magic_links
		SET used = TRUE
		WHERE token = $1 AND used = FALSE AND created_at > $2
		RETURNING email`,
		token, time.Now().UTC().Add(-ttl)).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("consuming magic link: %w", err)
	}
	return email, nil
}
