package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about a user's logged training.
type DataStats struct {
	TotalWorkouts   int64         `json:"total_workouts"`
	TotalSets       int64         `json:"total_sets"`
	EarliestWorkout *time.Time    `json:"earliest_workout"`
	LatestWorkout   *time.Time    `json:"latest_workout"`
	WorkoutsByName  []WorkoutStat `json:"workouts_by_name"`
}

// WorkoutStat holds summary counts for a single workout name.
type WorkoutStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetDataStats returns aggregate statistics for a user's logged workouts.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM workout_logs WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalWorkouts, &stats.EarliestWorkout, &stats.LatestWorkout)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM set_logs s JOIN workout_logs w ON w.id = s.workout_log_id
		WHERE w.user_id = $1`,
		userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT name, COUNT(*)
		FROM workout_logs
		WHERE user_id = $1
		GROUP BY name
		ORDER BY COUNT(*) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by name: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutStat
		if err := rows.Scan(&s.Name, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning workout stat: %w", err)
		}
		stats.WorkoutsByName = append(stats.WorkoutsByName, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
