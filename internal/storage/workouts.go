package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workoutColumns = `id, user_id, date, name, week_in_cycle, week_type, notes, created_at`

// InsertWorkoutLog inserts a workout row with a fresh ID and returns it.
func (db *DB) InsertWorkoutLog(ctx context.Context, w models.WorkoutLog) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO workout_logs (id, user_id, date, name, week_in_cycle, week_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, w.UserID, w.Date, w.Name, w.WeekInCycle, w.WeekType, w.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting workout log: %w", err)
	}
	return id, nil
}

// WorkoutLogExists reports whether a workout with the same date and name
// is already recorded for the user.
func (db *DB) WorkoutLogExists(ctx context.Context, userID int, date time.Time, name string) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout_logs
		WHERE user_id = $1 AND date = $2 AND name = $3`,
		userID, date, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking workout log: %w", err)
	}
	return count > 0, nil
}

// InsertSetLogs batch-inserts set rows for a workout. Returns count inserted.
func (db *DB) InsertSetLogs(ctx context.Context, rows []models.SetLog) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO set_logs (workout_log_id, exercise_name, set_number, reps, weight_kg, rpe) VALUES `
	args := make([]any, 0, len(rows)*6)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, r.WorkoutLogID, r.ExerciseName, r.SetNumber, r.Reps, r.WeightKg, r.RPE)
	}

	query += strings.Join(valueStrings, ",")

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting set logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryWorkoutLogs retrieves a user's workouts, newest first. limit <= 0
// means no limit.
func (db *DB) QueryWorkoutLogs(ctx context.Context, userID, limit int) ([]models.WorkoutLog, error) {
	query := `SELECT ` + workoutColumns + `
		FROM workout_logs
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout logs: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutLog
	for rows.Next() {
		var w models.WorkoutLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Name, &w.WeekInCycle,
			&w.WeekType, &w.Notes, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// WorkoutDetail is a workout with its performed sets.
type WorkoutDetail struct {
	models.WorkoutLog
	Sets []models.SetLog `json:"sets"`
}

// GetWorkoutLog retrieves a single workout and its sets, scoped to the
// owning user.
func (db *DB) GetWorkoutLog(ctx context.Context, workoutID uuid.UUID, userID int) (*WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT `+workoutColumns+`
		FROM workout_logs
		WHERE id = $1 AND user_id = $2`,
		workoutID, userID)

	var w models.WorkoutLog
	err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.Name, &w.WeekInCycle,
		&w.WeekType, &w.Notes, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout log: %w", err)
	}

	detail := &WorkoutDetail{WorkoutLog: w, Sets: []models.SetLog{}}

	setRows, err := db.Pool.Query(ctx, `
		SELECT id, workout_log_id, exercise_name, set_number, reps, weight_kg, rpe
		FROM set_logs
		WHERE workout_log_id = $1
		ORDER BY exercise_name, set_number`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying set logs: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s models.SetLog
		if err := setRows.Scan(&s.ID, &s.WorkoutLogID, &s.ExerciseName,
			&s.SetNumber, &s.Reps, &s.WeightKg, &s.RPE); err != nil {
			return nil, fmt.Errorf("scanning set log: %w", err)
		}
		detail.Sets = append(detail.Sets, s)
	}
	return detail, setRows.Err()
}

// DeleteWorkoutLog removes a workout and its sets (cascade), scoped to the
// owning user.
func (db *DB) DeleteWorkoutLog(ctx context.Context, workoutID uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_logs WHERE id = $1 AND user_id = $2`,
		workoutID, userID)
	if err != nil {
		return fmt.Errorf("deleting workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// QuerySetsInRange retrieves all sets a user performed in [start, end),
// for the stats calculator.
func (db *DB) QuerySetsInRange(ctx context.Context, userID int, start, end time.Time) ([]models.SetLog, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT s.id, s.workout_log_id, s.exercise_name, s.set_number, s.reps, s.weight_kg, s.rpe
		FROM set_logs s
		JOIN workout_logs w ON w.id = s.workout_log_id
		WHERE w.user_id = $1 AND w.date >= $2 AND w.date < $3
		ORDER BY s.exercise_name, s.set_number`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sets in range: %w", err)
	}
	defer rows.Close()

	var result []models.SetLog
	for rows.Next() {
		var s models.SetLog
		if err := rows.Scan(&s.ID, &s.WorkoutLogID, &s.ExerciseName,
			&s.SetNumber, &s.Reps, &s.WeightKg, &s.RPE); err != nil {
			return nil, fmt.Errorf("scanning set log: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
