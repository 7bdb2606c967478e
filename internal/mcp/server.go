// Package mcp exposes the training program and logged workout data to MCP
// clients (e.g. an AI assistant acting as a coach).
package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/program"
	"github.com/claude/liftlog/internal/storage"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// DataSource abstracts the stored-workout queries MCP tools need.
// *storage.DB satisfies it.
type DataSource interface {
	QuerySetsInRange(ctx context.Context, userID int, start, end time.Time) ([]models.SetLog, error)
	QueryWorkoutLogs(ctx context.Context, userID, limit int) ([]models.WorkoutLog, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

var _ DataSource = (*storage.DB)(nil)

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	ds        DataSource
	scheduler *program.Scheduler
	log       *slog.Logger
}
