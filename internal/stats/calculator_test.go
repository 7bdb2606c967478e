package stats

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func rpe(v float64) *float64 { return &v }

// TestEstimate1RMSingleRep verifies that a true single returns the weight
// unchanged, with no formula applied.
func TestEstimate1RMSingleRep(t *testing.T) {
	if got := Estimate1RM(140, 1, nil); got != 140 {
		t.Errorf("1RM for a single = %v, want 140", got)
	}
	// RPE must not inflate an actual single either.
	if got := Estimate1RM(140, 1, rpe(8)); got != 140 {
		t.Errorf("1RM for a single at RPE 8 = %v, want 140", got)
	}
}

// TestEstimate1RMEpley verifies the Epley formula: 100kg x 10 estimates
// 100 * (1 + 10/30) = 133.33.
func TestEstimate1RMEpley(t *testing.T) {
	if got := Estimate1RM(100, 10, nil); got != 133.33 {
		t.Errorf("Epley estimate = %v, want 133.33", got)
	}
}

// TestEstimate1RMWithRPE verifies the RPE adjustment: RPE 10 leaves the
// estimate untouched, lower RPE raises it by 2.5% per point in reserve.
func TestEstimate1RMWithRPE(t *testing.T) {
	base := Estimate1RM(100, 5, nil)
	if got := Estimate1RM(100, 5, rpe(10)); got != base {
		t.Errorf("RPE 10 estimate = %v, want base %v", got, base)
	}
	// 100 * (1 + 5/30) * (1 + 2*0.025) = 116.6667 * 1.05 = 122.5
	if got := Estimate1RM(100, 5, rpe(8)); got != 122.5 {
		t.Errorf("RPE 8 estimate = %v, want 122.5", got)
	}
}

func sampleSets() []models.SetLog {
	return []models.SetLog{
		{ExerciseName: "Back Squat", SetNumber: 1, Reps: 5, WeightKg: 100},
		{ExerciseName: "Back Squat", SetNumber: 2, Reps: 5, WeightKg: 100, RPE: rpe(9)},
		{ExerciseName: "Bench Press", SetNumber: 1, Reps: 8, WeightKg: 80},
	}
}

// TestVolume verifies total volume is reps x weight summed over all sets.
func TestVolume(t *testing.T) {
	// 5*100 + 5*100 + 8*80 = 1640
	if got := Volume(sampleSets()); got != 1640 {
		t.Errorf("volume = %v, want 1640", got)
	}
	if got := Volume(nil); got != 0 {
		t.Errorf("volume of no sets = %v, want 0", got)
	}
}

// TestWeeklyVolume verifies the per-exercise grouping.
func TestWeeklyVolume(t *testing.T) {
	volumes := WeeklyVolume(sampleSets())

	squat := volumes["Back Squat"]
	if squat.TotalVolume != 1000 || squat.TotalSets != 2 || squat.TotalReps != 10 {
		t.Errorf("squat volume = %+v, want 1000/2/10", squat)
	}
	bench := volumes["Bench Press"]
	if bench.TotalVolume != 640 || bench.TotalSets != 1 || bench.TotalReps != 8 {
		t.Errorf("bench volume = %+v, want 640/1/8", bench)
	}
}

// TestBestEstimated1RMs verifies the best estimate per exercise wins; the
// RPE 9 set estimates higher than the plain set at the same weight.
func TestBestEstimated1RMs(t *testing.T) {
	best := BestEstimated1RMs(sampleSets())

	plain := Estimate1RM(100, 5, nil)
	adjusted := Estimate1RM(100, 5, rpe(9))
	if adjusted <= plain {
		t.Fatalf("RPE 9 estimate %v should exceed plain %v", adjusted, plain)
	}
	if best["Back Squat"] != adjusted {
		t.Errorf("best squat 1RM = %v, want %v", best["Back Squat"], adjusted)
	}
	if best["Bench Press"] != Estimate1RM(80, 8, nil) {
		t.Errorf("best bench 1RM = %v", best["Bench Press"])
	}
}

// TestSummarize verifies the workout summary carries total volume and
// per-exercise sets in order.
func TestSummarize(t *testing.T) {
	workout := models.WorkoutLog{Name: "Lower Body Strength", WeekInCycle: 2, WeekType: "A"}
	summary := Summarize(workout, sampleSets())

	if summary.TotalVolume != 1640 {
		t.Errorf("total volume = %v, want 1640", summary.TotalVolume)
	}
	if len(summary.Exercises) != 2 {
		t.Fatalf("exercise count = %d, want 2", len(summary.Exercises))
	}
	squat := summary.Exercises["Back Squat"]
	if len(squat.Sets) != 2 || squat.Sets[0].SetNumber != 1 {
		t.Errorf("squat sets = %+v", squat.Sets)
	}
	if squat.TotalVolume != 1000 {
		t.Errorf("squat volume = %v, want 1000", squat.TotalVolume)
	}
}
