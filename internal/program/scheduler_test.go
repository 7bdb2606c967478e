package program

import (
	"testing"
	"time"
)

// date builds a UTC date for test readability.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestCycleStateDayZero verifies that starting today means week 1 of the
// cycle with zero weeks elapsed.
func TestCycleStateDayZero(t *testing.T) {
	s := NewScheduler(Default())
	ref := date(2026, time.March, 2)

	st := s.CycleState(ref, ref)
	if st.WeeksElapsed != 0 {
		t.Errorf("weeks elapsed = %d, want 0", st.WeeksElapsed)
	}
	if st.WeekInCycle != 1 {
		t.Errorf("week in cycle = %d, want 1", st.WeekInCycle)
	}
	if st.CycleWeeks != 4 {
		t.Errorf("cycle weeks = %d, want 4", st.CycleWeeks)
	}
}

// TestCycleStateWrapsAtCycleLength verifies the modular week computation:
// week in cycle stays in [1, cycleWeeks] and wraps after the deload week.
func TestCycleStateWrapsAtCycleLength(t *testing.T) {
	s := NewScheduler(Default())
	start := date(2026, time.January, 5)

	cases := []struct {
		weeksLater  int
		weekInCycle int
	}{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 1}, {7, 4}, {8, 1},
	}
	for _, tc := range cases {
		ref := start.AddDate(0, 0, tc.weeksLater*7)
		st := s.CycleState(ref, start)
		if st.WeeksElapsed != tc.weeksLater {
			t.Errorf("weeks later %d: weeks elapsed = %d", tc.weeksLater, st.WeeksElapsed)
		}
		if st.WeekInCycle != tc.weekInCycle {
			t.Errorf("weeks later %d: week in cycle = %d, want %d",
				tc.weeksLater, st.WeekInCycle, tc.weekInCycle)
		}
		if st.WeekInCycle < 1 || st.WeekInCycle > st.CycleWeeks {
			t.Errorf("weeks later %d: week in cycle %d out of [1,%d]",
				tc.weeksLater, st.WeekInCycle, st.CycleWeeks)
		}
	}
}

// TestCycleStateFutureStartClamps verifies that a start date in the future
// clamps to day zero instead of producing negative weeks.
func TestCycleStateFutureStartClamps(t *testing.T) {
	s := NewScheduler(Default())
	st := s.CycleState(date(2026, time.March, 2), date(2026, time.June, 1))
	if st.WeeksElapsed != 0 {
		t.Errorf("weeks elapsed = %d, want 0", st.WeeksElapsed)
	}
	if st.WeekInCycle != 1 {
		t.Errorf("week in cycle = %d, want 1", st.WeekInCycle)
	}
}

// TestCycleStateZeroStartDefaultsToReference verifies that an unset start
// date is treated as the reference date (day zero of week one).
func TestCycleStateZeroStartDefaultsToReference(t *testing.T) {
	s := NewScheduler(Default())
	st := s.CycleState(date(2026, time.March, 2), time.Time{})
	if st.WeeksElapsed != 0 || st.WeekInCycle != 1 {
		t.Errorf("state = %+v, want day zero of week 1", st)
	}
}

// TestCycleStateDefaultsCycleWeeks verifies that a missing or zero
// cycle_weeks defaults to 4.
func TestCycleStateDefaultsCycleWeeks(t *testing.T) {
	s := NewScheduler(Program{Name: "empty"})
	st := s.CycleState(date(2026, time.March, 2), date(2026, time.January, 5))
	if st.CycleWeeks != 4 {
		t.Errorf("cycle weeks = %d, want 4", st.CycleWeeks)
	}
}

// TestWeekTypeAlternatesByParity verifies the strict A/B alternation:
// weeks elapsed 0,1,2,3 resolve to A,B,A,B.
func TestWeekTypeAlternatesByParity(t *testing.T) {
	s := NewScheduler(Default())
	want := []string{"A", "B", "A", "B"}
	for weeks, label := range want {
		if got := s.weekTypeFor(weeks, ""); got != label {
			t.Errorf("weeks elapsed %d: week type = %q, want %q", weeks, got, label)
		}
	}
}

// TestWeekTypeExplicitOverride verifies that a preferred week type wins
// when it is a defined key, and is ignored when it is not.
func TestWeekTypeExplicitOverride(t *testing.T) {
	s := NewScheduler(Default())
	if got := s.weekTypeFor(0, "B"); got != "B" {
		t.Errorf("override B on even week = %q, want B", got)
	}
	if got := s.weekTypeFor(1, "Z"); got != "B" {
		t.Errorf("unknown override on odd week = %q, want B", got)
	}
}

// TestTodayPlanDayZeroMonday covers the default-program scenario: start
// today on a Monday resolves week A, week 1, strength_day, with Back Squat
// at 4x6 (index 0 of [4,4,4,3]/[6,5,4,6]).
func TestTodayPlanDayZeroMonday(t *testing.T) {
	s := NewScheduler(Default())
	monday := date(2026, time.March, 2) // a Monday

	plan := s.TodayPlan(monday, "", monday)

	if plan.WeekType != "A" {
		t.Errorf("week type = %q, want A", plan.WeekType)
	}
	if plan.WeekInCycle != 1 {
		t.Errorf("week in cycle = %d, want 1", plan.WeekInCycle)
	}
	if plan.SessionKey != "strength_day" {
		t.Errorf("session key = %q, want strength_day", plan.SessionKey)
	}
	if plan.DayName != "Monday" {
		t.Errorf("day name = %q, want Monday", plan.DayName)
	}
	if plan.IsRestDay || plan.IsDeload {
		t.Errorf("rest=%v deload=%v, want neither", plan.IsRestDay, plan.IsDeload)
	}
	if len(plan.Exercises) == 0 {
		t.Fatal("no exercises resolved")
	}
	squat := plan.Exercises[0]
	if squat.Name != "Back Squat" || squat.Sets != 4 || squat.Reps != 6 {
		t.Errorf("first exercise = %+v, want Back Squat 4x6", squat)
	}
}

// TestTodayPlanDeloadWeek covers the three-weeks-later scenario: weeks
// elapsed 3 is odd (week B) and week 4 of the cycle, the deload week, so
// Back Squat resolves to the final entries (3 sets of 6).
func TestTodayPlanDeloadWeek(t *testing.T) {
	s := NewScheduler(Default())
	start := date(2026, time.March, 2)
	ref := start.AddDate(0, 0, 21) // Monday three weeks later

	plan := s.TodayPlan(start, "", ref)

	if plan.WeekType != "B" {
		t.Errorf("week type = %q, want B", plan.WeekType)
	}
	if plan.WeekInCycle != 4 {
		t.Errorf("week in cycle = %d, want 4", plan.WeekInCycle)
	}
	if !plan.IsDeload {
		t.Error("is_deload = false, want true")
	}
	squat := plan.Exercises[0]
	if squat.Sets != 3 || squat.Reps != 6 {
		t.Errorf("deload squat = %dx%d, want 3x6", squat.Sets, squat.Reps)
	}
}

// TestTodayPlanRestDay verifies that a weekday with no mapped session
// yields a rest day with an empty exercise list.
func TestTodayPlanRestDay(t *testing.T) {
	s := NewScheduler(Default())
	tuesday := date(2026, time.March, 3)

	plan := s.TodayPlan(tuesday, "", tuesday)

	if !plan.IsRestDay {
		t.Error("is_rest_day = false, want true")
	}
	if plan.SessionName != "Rest Day" {
		t.Errorf("session name = %q, want Rest Day", plan.SessionName)
	}
	if plan.Exercises == nil || len(plan.Exercises) != 0 {
		t.Errorf("exercises = %v, want empty non-nil slice", plan.Exercises)
	}
}

// TestDayPlanClampsToLastWeekValue verifies per-week value clamping: week
// 4 picks index 3, and an out-of-range week 10 still picks the last entry.
func TestDayPlanClampsToLastWeekValue(t *testing.T) {
	s := NewScheduler(Default())

	for _, week := range []int{4, 10} {
		plan := s.DayPlan("A", "Monday", week)
		if len(plan.Exercises) == 0 {
			t.Fatalf("week %d: no exercises", week)
		}
		if got := plan.Exercises[0].Sets; got != 3 {
			t.Errorf("week %d: squat sets = %d, want 3 (clamped to last)", week, got)
		}
	}
}

// TestFlexIntsForWeek exercises the value-for-week selection directly:
// clamping both ends, scalar pass-through, and the empty case.
func TestFlexIntsForWeek(t *testing.T) {
	seq := FlexInts{4, 4, 4, 3}
	cases := []struct {
		week, want int
	}{
		{1, 4}, {4, 3}, {10, 3}, {0, 4}, {-2, 4},
	}
	for _, tc := range cases {
		if got := seq.ForWeek(tc.week); got != tc.want {
			t.Errorf("ForWeek(%d) = %d, want %d", tc.week, got, tc.want)
		}
	}

	scalar := FlexInts{5}
	for _, week := range []int{1, 3, 9} {
		if got := scalar.ForWeek(week); got != 5 {
			t.Errorf("scalar ForWeek(%d) = %d, want 5", week, got)
		}
	}

	var empty FlexInts
	if got := empty.ForWeek(2); got != 0 {
		t.Errorf("empty ForWeek = %d, want 0", got)
	}
}

// TestWeekPlanMatchesDayPlans verifies the round-trip property: every day
// in a week schedule equals the independently resolved day plan.
func TestWeekPlanMatchesDayPlans(t *testing.T) {
	s := NewScheduler(Default())

	for week := 1; week <= 4; week++ {
		sched := s.WeekPlan("B", week)
		if len(sched.Days) != 3 {
			t.Fatalf("week B schedule has %d days, want 3", len(sched.Days))
		}
		for _, day := range sched.Days {
			single := s.DayPlan("B", day.DayName, week)
			if single.SessionKey != day.SessionKey ||
				single.SessionName != day.SessionName ||
				single.IsRestDay != day.IsRestDay ||
				len(single.Exercises) != len(day.Exercises) {
				t.Errorf("week %d %s: day plan diverges from week plan", week, day.DayName)
				continue
			}
			for i := range single.Exercises {
				if single.Exercises[i] != day.Exercises[i] {
					t.Errorf("week %d %s exercise %d: %+v != %+v",
						week, day.DayName, i, single.Exercises[i], day.Exercises[i])
				}
			}
		}
	}
}

// TestWeekPlanDayOrder verifies the schedule lists days in calendar order.
func TestWeekPlanDayOrder(t *testing.T) {
	s := NewScheduler(Default())
	sched := s.WeekPlan("A", 1)

	want := []string{"Monday", "Thursday", "Saturday"}
	for i, day := range sched.Days {
		if day.DayName != want[i] {
			t.Errorf("day %d = %q, want %q", i, day.DayName, want[i])
		}
	}
}

// TestDayPlanUnknownWeekTypeFallsBack verifies the unknown-selector
// recovery: an undefined week type resolves to the first defined key.
func TestDayPlanUnknownWeekTypeFallsBack(t *testing.T) {
	s := NewScheduler(Default())
	plan := s.DayPlan("Z", "Monday", 1)
	if plan.WeekType != "A" {
		t.Errorf("week type = %q, want fallback A", plan.WeekType)
	}
	if plan.SessionKey != "strength_day" {
		t.Errorf("session key = %q, want strength_day", plan.SessionKey)
	}
}

// TestUndefinedSessionKeyIsRestDay verifies a template pointing at a
// session that does not exist degrades to a rest day instead of failing.
func TestUndefinedSessionKeyIsRestDay(t *testing.T) {
	s := NewScheduler(Program{
		CycleWeeks: 4,
		Weeks:      map[string]WeekTemplate{"A": {"Monday": "ghost"}},
		Sessions:   map[string]Session{"real": {Name: "Real"}},
	})
	plan := s.DayPlan("A", "Monday", 1)
	if !plan.IsRestDay {
		t.Error("is_rest_day = false, want true for undefined session key")
	}
	if len(plan.Exercises) != 0 {
		t.Errorf("exercises = %v, want empty", plan.Exercises)
	}
}

// legacyProgram builds a minimal splits-only program for legacy-mode tests.
func legacyProgram() Program {
	return Program{
		Name:       "Old Faithful",
		CycleWeeks: 4,
		Splits: map[string]Session{
			"A": {
				Name:        "Full Body A",
				Description: "Squat focus.",
				Exercises: []Exercise{
					{Name: "Back Squat", Sets: FlexInts{4, 4, 4, 3}, Reps: FlexInts{6, 5, 4, 6}},
				},
			},
		},
	}
}

// TestLegacySplitFallback verifies the legacy mode: requesting an unknown
// split falls back to the first defined split without error.
func TestLegacySplitFallback(t *testing.T) {
	s := NewScheduler(legacyProgram())
	if s.sessionStructured {
		t.Fatal("splits-only program detected as session-structured")
	}

	plan := s.DayPlan("Z", "", 1)
	if plan.Split != "A" {
		t.Errorf("split = %q, want fallback A", plan.Split)
	}
	if plan.SessionName != "Full Body A" {
		t.Errorf("session name = %q, want Full Body A", plan.SessionName)
	}
	if plan.IsRestDay {
		t.Error("legacy plans never have rest days")
	}
}

// TestLegacyTodayPlanSingleSplitOddWeek verifies date-driven resolution
// for a program defining only one split: on odd weeks the parity label
// names no defined split, and the plan falls back to the first defined
// split instead of coming back empty.
func TestLegacyTodayPlanSingleSplitOddWeek(t *testing.T) {
	s := NewScheduler(legacyProgram())

	start := date(2026, time.March, 2)
	oneWeekLater := start.AddDate(0, 0, 7) // weeks elapsed 1 -> parity B, undefined

	plan := s.TodayPlan(start, "", oneWeekLater)
	if plan.Split != "A" {
		t.Errorf("split = %q, want fallback to first defined split A", plan.Split)
	}
	if plan.SessionName != "Full Body A" {
		t.Errorf("session name = %q, want Full Body A", plan.SessionName)
	}
	if len(plan.Exercises) != 1 || plan.Exercises[0].Name != "Back Squat" {
		t.Errorf("exercises = %v, want the fallback split's exercises", plan.Exercises)
	}
	if plan.WeekInCycle != 2 {
		t.Errorf("week in cycle = %d, want 2", plan.WeekInCycle)
	}
}

// TestLegacyTodayPlanIgnoresWeekday verifies that legacy resolution does
// not depend on the day of week and applies the default 3+1 prescription
// when a split omits sets/reps.
func TestLegacyTodayPlanIgnoresWeekday(t *testing.T) {
	prog := legacyProgram()
	prog.Splits["B"] = Session{
		Name:      "Full Body B",
		Exercises: []Exercise{{Name: "Deadlift"}},
	}
	s := NewScheduler(prog)

	sunday := date(2026, time.March, 8)
	plan := s.TodayPlan(sunday.AddDate(0, 0, -7), "", sunday) // weeks elapsed 1 -> B

	if plan.Split != "B" {
		t.Errorf("split = %q, want B", plan.Split)
	}
	if plan.DayName != "" {
		t.Errorf("day name = %q, want empty in legacy mode", plan.DayName)
	}
	dl := plan.Exercises[0]
	if dl.Sets != 3 || dl.Reps != 8 {
		t.Errorf("default prescription = %dx%d, want 3x8", dl.Sets, dl.Reps)
	}
}

// TestLegacyEmptySplitsDefaultsToA verifies that a completely empty legacy
// definition still resolves with the hardcoded "A" key.
func TestLegacyEmptySplitsDefaultsToA(t *testing.T) {
	s := NewScheduler(Program{Splits: map[string]Session{}})
	plan := s.DayPlan("anything", "", 1)
	if plan.Split != "A" {
		t.Errorf("split = %q, want hardcoded A", plan.Split)
	}
	if len(plan.Exercises) != 0 {
		t.Errorf("exercises = %v, want empty", plan.Exercises)
	}
}

// TestWeekTypeLabels verifies labels for both program shapes.
func TestWeekTypeLabels(t *testing.T) {
	session := NewScheduler(Default())
	labels := session.WeekTypeLabels()
	if labels["A"] != "Week A" || labels["B"] != "Week B" {
		t.Errorf("session labels = %v", labels)
	}

	legacy := NewScheduler(legacyProgram())
	labels = legacy.WeekTypeLabels()
	if labels["A"] != "Full Body A" {
		t.Errorf("legacy labels = %v", labels)
	}
}

// TestInfoDefaults verifies Info fills a generic name and the cycle-length
// default for an empty definition.
func TestInfoDefaults(t *testing.T) {
	s := NewScheduler(Program{})
	info := s.Info()
	if info.Name != "Unknown Program" {
		t.Errorf("name = %q, want Unknown Program", info.Name)
	}
	if info.CycleWeeks != 4 {
		t.Errorf("cycle weeks = %d, want 4", info.CycleWeeks)
	}
}
