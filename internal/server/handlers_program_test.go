package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftlog/internal/program"
)

func testServer() *Server {
	return &Server{scheduler: program.NewScheduler(program.Default())}
}

// TestHandleProgramInfo verifies the program metadata endpoint exposes
// name, cycle length and week-type labels.
func TestHandleProgramInfo(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/program", nil)
	rec := httptest.NewRecorder()

	s.handleProgramInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Program   program.Info      `json:"program"`
		WeekTypes map[string]string `json:"week_types"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Program.Name != "Default 3+1 Program" {
		t.Errorf("program name = %q", body.Program.Name)
	}
	if body.Program.CycleWeeks != 4 {
		t.Errorf("cycle weeks = %d, want 4", body.Program.CycleWeeks)
	}
	if body.WeekTypes["A"] != "Week A" {
		t.Errorf("week types = %v", body.WeekTypes)
	}
}

// TestHandleProgramToday verifies date-driven resolution over HTTP: a
// Monday start resolving on the same Monday yields the week-1 strength
// session.
func TestHandleProgramToday(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/program/today?start=2026-03-02&date=2026-03-02", nil)
	rec := httptest.NewRecorder()

	s.handleProgramToday(rec, req)

	var plan program.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if plan.WeekType != "A" || plan.WeekInCycle != 1 {
		t.Errorf("plan = week %s/%d, want A/1", plan.WeekType, plan.WeekInCycle)
	}
	if plan.SessionKey != "strength_day" {
		t.Errorf("session key = %q, want strength_day", plan.SessionKey)
	}
}

// TestHandleProgramDay verifies explicit selectors, including the
// deload-week clamp on prescriptions.
func TestHandleProgramDay(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/program/day?week_type=A&day=Monday&week=4", nil)
	rec := httptest.NewRecorder()

	s.handleProgramDay(rec, req)

	var plan program.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !plan.IsDeload {
		t.Error("is_deload = false, want true for week 4")
	}
	if plan.Exercises[0].Sets != 3 {
		t.Errorf("deload sets = %d, want 3", plan.Exercises[0].Sets)
	}
}

// TestHandleProgramDayDefaultsWeek verifies a missing or bad week selector
// falls back to week 1 instead of erroring.
func TestHandleProgramDayDefaultsWeek(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/program/day?week_type=A&day=Monday&week=zero", nil)
	rec := httptest.NewRecorder()

	s.handleProgramDay(rec, req)

	var plan program.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if plan.WeekInCycle != 1 {
		t.Errorf("week in cycle = %d, want default 1", plan.WeekInCycle)
	}
}

// TestHandleProgramWeek verifies the full-week schedule endpoint.
func TestHandleProgramWeek(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/program/week?week_type=B&week=2", nil)
	rec := httptest.NewRecorder()

	s.handleProgramWeek(rec, req)

	var sched program.WeekSchedule
	if err := json.NewDecoder(rec.Body).Decode(&sched); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sched.WeekType != "B" || len(sched.Days) != 3 {
		t.Errorf("schedule = %s with %d days, want B with 3", sched.WeekType, len(sched.Days))
	}
	// Week B Thursday is the pressing session.
	if sched.Days[1].SessionKey != "upper_push" {
		t.Errorf("Thursday session = %q, want upper_push", sched.Days[1].SessionKey)
	}
}
