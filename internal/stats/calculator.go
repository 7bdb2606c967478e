// Package stats computes training statistics (volume, estimated one-rep
// max) from logged sets. Everything here is a pure function over rows the
// storage layer supplies.
package stats

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// Estimate1RM estimates a one-rep max from a performed set using the Epley
// formula, with an optional RPE-based adjustment: lower perceived effort
// means the set had reps in reserve, so the true max sits higher.
func Estimate1RM(weightKg float64, reps int, rpe *float64) float64 {
	if reps == 1 {
		return weightKg
	}

	estimated := weightKg * (1 + float64(reps)/30.0)

	if rpe != nil {
		adjustment := 1.0 + (10-*rpe)*0.025
		estimated *= adjustment
	}

	return round2(estimated)
}

// Volume returns the total volume (reps x weight) across the given sets.
func Volume(sets []models.SetLog) float64 {
	var total float64
	for _, s := range sets {
		total += float64(s.Reps) * s.WeightKg
	}
	return round2(total)
}

// ExerciseVolume aggregates per-exercise training volume.
type ExerciseVolume struct {
	TotalVolume float64 `json:"total_volume"`
	TotalSets   int     `json:"total_sets"`
	TotalReps   int     `json:"total_reps"`
}

// WeeklyVolume groups sets by exercise and totals volume, set count and
// rep count per exercise.
func WeeklyVolume(sets []models.SetLog) map[string]ExerciseVolume {
	volumes := make(map[string]ExerciseVolume)
	for _, s := range sets {
		v := volumes[s.ExerciseName]
		v.TotalVolume += float64(s.Reps) * s.WeightKg
		v.TotalSets++
		v.TotalReps += s.Reps
		volumes[s.ExerciseName] = v
	}
	for name, v := range volumes {
		v.TotalVolume = round2(v.TotalVolume)
		volumes[name] = v
	}
	return volumes
}

// BestEstimated1RMs returns the best estimated one-rep max per exercise
// across the given sets.
func BestEstimated1RMs(sets []models.SetLog) map[string]float64 {
	best := make(map[string]float64)
	for _, s := range sets {
		est := Estimate1RM(s.WeightKg, s.Reps, s.RPE)
		if est > best[s.ExerciseName] {
			best[s.ExerciseName] = est
		}
	}
	return best
}

// ExerciseSummary describes one exercise within a workout summary.
type ExerciseSummary struct {
	Sets             []models.SetLog `json:"sets"`
	TotalVolume      float64         `json:"total_volume"`
	BestEstimated1RM float64         `json:"best_estimated_1rm"`
}

// WorkoutSummary is a single workout with per-exercise breakdowns.
type WorkoutSummary struct {
	Workout     models.WorkoutLog          `json:"workout"`
	TotalVolume float64                    `json:"total_volume"`
	Exercises   map[string]ExerciseSummary `json:"exercises"`
}

// Summarize builds the per-exercise breakdown of a single workout.
func Summarize(workout models.WorkoutLog, sets []models.SetLog) WorkoutSummary {
	summary := WorkoutSummary{
		Workout:     workout,
		TotalVolume: Volume(sets),
		Exercises:   make(map[string]ExerciseSummary),
	}

	for _, s := range sets {
		ex := summary.Exercises[s.ExerciseName]
		ex.Sets = append(ex.Sets, s)
		ex.TotalVolume = round2(ex.TotalVolume + float64(s.Reps)*s.WeightKg)
		if est := Estimate1RM(s.WeightKg, s.Reps, s.RPE); est > ex.BestEstimated1RM {
			ex.BestEstimated1RM = est
		}
		summary.Exercises[s.ExerciseName] = ex
	}

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
