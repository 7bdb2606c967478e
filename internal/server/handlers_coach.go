package server

import (
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/google/uuid"
)

// coachUser holds the subset of user fields exposed to a coach.
type coachUser struct {
	Name string `json:"name"`
}

// handleCoachView is the read-only view a lifter shares with their coach.
// Access is keyed solely by the unguessable share token; no session is
// involved.
func (s *Server) handleCoachView(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserByShareToken(r.Context(), pathParam(r, "token"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown share link"})
		return
	}

	now := time.Now().UTC()
	weekSets, err := s.db.QuerySetsInRange(r.Context(), user.ID, now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	if err != nil {
		s.log.Error("coach weekly sets query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load view"})
		return
	}
	monthSets, err := s.db.QuerySetsInRange(r.Context(), user.ID, now.AddDate(0, 0, -28), now.AddDate(0, 0, 1))
	if err != nil {
		s.log.Error("coach monthly sets query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load view"})
		return
	}

	recent, err := s.db.QueryWorkoutLogs(r.Context(), user.ID, 10)
	if err != nil {
		s.log.Error("coach workouts query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load view"})
		return
	}
	if recent == nil {
		recent = []models.WorkoutLog{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":            coachUser{Name: user.Name},
		"weekly_volume":   stats.WeeklyVolume(weekSets),
		"best_1rms":       stats.BestEstimated1RMs(monthSets),
		"recent_workouts": recent,
	})
}

// handleCoachWorkout shows one workout's summary through a share link. The
// workout must belong to the token's owner.
func (s *Server) handleCoachWorkout(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserByShareToken(r.Context(), pathParam(r, "token"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown share link"})
		return
	}

	workoutID, err := uuid.Parse(pathParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkoutLog(r.Context(), workoutID, user.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	writeJSON(w, http.StatusOK, stats.Summarize(detail.WorkoutLog, detail.Sets))
}
