package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// handleDashboard assembles the landing view: today's prescribed workout,
// last week's volume, best recent 1RM estimates, and recent workouts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	start := parseDateParam(r, "start")
	weekType := r.URL.Query().Get("week_type")
	today := s.scheduler.TodayPlan(start, weekType, time.Time{})

	now := time.Now().UTC()
	weekSets, err := s.db.QuerySetsInRange(r.Context(), user.ID, now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	if err != nil {
		s.log.Error("weekly sets query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load dashboard"})
		return
	}
	monthSets, err := s.db.QuerySetsInRange(r.Context(), user.ID, now.AddDate(0, 0, -28), now.AddDate(0, 0, 1))
	if err != nil {
		s.log.Error("monthly sets query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load dashboard"})
		return
	}

	recent, err := s.db.QueryWorkoutLogs(r.Context(), user.ID, 5)
	if err != nil {
		s.log.Error("recent workouts query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load dashboard"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":            user,
		"today_workout":   today,
		"weekly_volume":   stats.WeeklyVolume(weekSets),
		"best_1rms":       stats.BestEstimated1RMs(monthSets),
		"recent_workouts": recent,
		"share_url":       s.shareURL(user.ShareToken),
	})
}

type logSetRequest struct {
	ExerciseName string   `json:"exercise_name"`
	SetNumber    int      `json:"set_number"`
	Reps         int      `json:"reps"`
	WeightKg     float64  `json:"weight_kg"`
	RPE          *float64 `json:"rpe"`
}

type logWorkoutRequest struct {
	Date        string          `json:"date"`
	Name        string          `json:"name"`
	WeekInCycle int             `json:"week_in_cycle"`
	WeekType    string          `json:"week_type"`
	Notes       string          `json:"notes"`
	Sets        []logSetRequest `json:"sets"`
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req logWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout name is required"})
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	if req.WeekInCycle < 1 {
		req.WeekInCycle = 1
	}
	if req.WeekType == "" {
		req.WeekType = "A"
	}

	workoutID, err := s.db.InsertWorkoutLog(r.Context(), models.WorkoutLog{
		UserID:      user.ID,
		Date:        date,
		Name:        req.Name,
		WeekInCycle: req.WeekInCycle,
		WeekType:    req.WeekType,
		Notes:       req.Notes,
	})
	if err != nil {
		s.log.Error("workout insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not log workout"})
		return
	}

	setRows := make([]models.SetLog, 0, len(req.Sets))
	setNumbers := make(map[string]int)
	for _, set := range req.Sets {
		if set.ExerciseName == "" || set.Reps <= 0 {
			continue
		}
		setNumbers[set.ExerciseName]++
		number := set.SetNumber
		if number <= 0 {
			number = setNumbers[set.ExerciseName]
		}
		setRows = append(setRows, models.SetLog{
			WorkoutLogID: workoutID,
			ExerciseName: set.ExerciseName,
			SetNumber:    number,
			Reps:         set.Reps,
			WeightKg:     set.WeightKg,
			RPE:          set.RPE,
		})
	}

	inserted, err := s.db.InsertSetLogs(r.Context(), setRows)
	if err != nil {
		s.log.Error("set insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not log sets"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":            workoutID,
		"sets_recorded": inserted,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	workouts, err := s.db.QueryWorkoutLogs(r.Context(), user.ID, limit)
	if err != nil {
		s.log.Error("history query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load history"})
		return
	}
	if workouts == nil {
		workouts = []models.WorkoutLog{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
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

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	workoutID, err := uuid.Parse(pathParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	if err := s.db.DeleteWorkoutLog(r.Context(), workoutID, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
			return
		}
		s.log.Error("workout delete failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not delete workout"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	dataStats, err := s.db.GetDataStats(r.Context(), user.ID)
	if err != nil {
		s.log.Error("stats query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load stats"})
		return
	}
	writeJSON(w, http.StatusOK, dataStats)
}
