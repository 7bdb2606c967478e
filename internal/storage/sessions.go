package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// CreateLoginSession opens a session for the user and returns its token.
func (db *DB) CreateLoginSession(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	token, err := NewToken(32)
	if err != nil {
		return "", err
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO login_sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)`,
		token, userID, time.Now().UTC().Add(ttl))
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return token, nil
}

// GetLoginSession resolves a session token to its session. Expired
// sessions behave as missing.
func (db *DB) GetLoginSession(ctx context.Context, token string) (*models.LoginSession, error) {
	var s models.LoginSession
	err := db.Pool.QueryRow(ctx, `
		SELECT token, user_id, created_at, expires_at
		FROM login_sessions
		WHERE token = $1 AND expires_at > NOW()`,
		token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// DeleteLoginSession logs a session out. Deleting an unknown token is not
// an error.
func (db *DB) DeleteLoginSession(ctx context.Context, token string) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM login_sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes stale session rows. Returns the count
// removed.
func (db *DB) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM login_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
