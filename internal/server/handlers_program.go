package server

import (
	"net/http"
	"strconv"
)

// handleProgramInfo returns program metadata and the available week types.
func (s *Server) handleProgramInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"program":    s.scheduler.Info(),
		"week_types": s.scheduler.WeekTypeLabels(),
	})
}

// handleProgramToday resolves the prescribed workout for today (or an
// explicit date). Query params: start (program start date, YYYY-MM-DD),
// week_type (explicit override), date (reference date, defaults to now).
func (s *Server) handleProgramToday(w http.ResponseWriter, r *http.Request) {
	start := parseDateParam(r, "start")
	reference := parseDateParam(r, "date")
	weekType := r.URL.Query().Get("week_type")

	writeJSON(w, http.StatusOK, s.scheduler.TodayPlan(start, weekType, reference))
}

// handleProgramDay resolves a plan for an explicit week type, day and
// cycle week. Query params: week_type, day, week.
func (s *Server) handleProgramDay(w http.ResponseWriter, r *http.Request) {
	weekType := r.URL.Query().Get("week_type")
	day := r.URL.Query().Get("day")
	week := parseWeekParam(r)

	writeJSON(w, http.StatusOK, s.scheduler.DayPlan(weekType, day, week))
}

// handleProgramWeek resolves a full week schedule. Query params:
// week_type, week.
func (s *Server) handleProgramWeek(w http.ResponseWriter, r *http.Request) {
	weekType := r.URL.Query().Get("week_type")
	week := parseWeekParam(r)

	writeJSON(w, http.StatusOK, s.scheduler.WeekPlan(weekType, week))
}

// parseWeekParam reads the cycle-week selector, defaulting to week 1.
func parseWeekParam(r *http.Request) int {
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < 1 {
		return 1
	}
	return week
}
