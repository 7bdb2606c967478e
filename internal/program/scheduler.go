package program

import (
	"fmt"
	"time"
)

// Scheduler resolves "what workout is prescribed" for a date or an
// explicit week/day selection, against an immutable program definition.
// It holds no mutable state and is safe for concurrent use.
type Scheduler struct {
	prog              Program
	cycleWeeks        int
	sessionStructured bool
}

// NewScheduler builds a Scheduler from a program definition. The program
// shape (session-structured vs legacy splits) is determined once here and
// fixed for the lifetime of the instance.
func NewScheduler(p Program) *Scheduler {
	cycleWeeks := p.CycleWeeks
	if cycleWeeks < 1 {
		cycleWeeks = 4
	}
	return &Scheduler{
		prog:              p,
		cycleWeeks:        cycleWeeks,
		sessionStructured: len(p.Weeks) > 0 && len(p.Sessions) > 0,
	}
}

// Info holds display-level program metadata.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CycleWeeks  int    `json:"cycle_weeks"`
}

// Info returns basic program information.
func (s *Scheduler) Info() Info {
	name := s.prog.Name
	if name == "" {
		name = "Unknown Program"
	}
	return Info{
		Name:        name,
		Description: s.prog.Description,
		CycleWeeks:  s.cycleWeeks,
	}
}

// WeekTypeLabels returns the available week-type (or split) keys mapped to
// display labels.
func (s *Scheduler) WeekTypeLabels() map[string]string {
	labels := make(map[string]string)
	if s.sessionStructured {
		for key := range s.prog.Weeks {
			labels[key] = "Week " + key
		}
		return labels
	}
	for key, split := range s.prog.Splits {
		if split.Name != "" {
			labels[key] = split.Name
		} else {
			labels[key] = "Split " + key
		}
	}
	return labels
}

// CycleState locates a reference date within the periodization cycle.
type CycleState struct {
	WeeksElapsed int `json:"weeks_elapsed"`
	WeekInCycle  int `json:"week_in_cycle"`
	CycleWeeks   int `json:"cycle_weeks"`
}

// CycleState computes how far into the program a reference date is. A zero
// start date defaults to the reference date; a start date in the future
// clamps to day zero rather than going negative.
func (s *Scheduler) CycleState(reference, start time.Time) CycleState {
	if start.IsZero() {
		start = reference
	}
	daysElapsed := daysBetween(start, reference)
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	weeksElapsed := daysElapsed / 7
	return CycleState{
		WeeksElapsed: weeksElapsed,
		WeekInCycle:  weeksElapsed%s.cycleWeeks + 1,
		CycleWeeks:   s.cycleWeeks,
	}
}

// daysBetween counts whole calendar days from a to b, ignoring the time of
// day and any timezone offset between the two values.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// weekTypeFor picks the week template key: an explicit preference wins
// when it names a defined key, otherwise weeks alternate strictly by
// parity between "A" and "B". Programs with other labels need the explicit
// preference; there is no N-way rotation.
func (s *Scheduler) weekTypeFor(weeksElapsed int, preferred string) string {
	if preferred != "" {
		if s.sessionStructured {
			if _, ok := s.prog.Weeks[preferred]; ok {
				return preferred
			}
		} else if _, ok := s.prog.Splits[preferred]; ok {
			return preferred
		}
	}
	if weeksElapsed%2 == 0 {
		return "A"
	}
	return "B"
}

// PlannedExercise is one exercise with sets and reps already resolved for
// a specific week of the cycle.
type PlannedExercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  int    `json:"reps"`
	Notes string `json:"notes"`
}

// Plan is a concrete, render-ready workout plan for a single day. It is a
// pure computed value, recomputed on every resolution call.
type Plan struct {
	WeekType           string            `json:"week_type"`
	Split              string            `json:"split"`
	SessionKey         string            `json:"session_key,omitempty"`
	SessionName        string            `json:"session_name"`
	SessionDescription string            `json:"session_description"`
	DayName            string            `json:"day_name,omitempty"`
	WeekInCycle        int               `json:"week_in_cycle"`
	CycleWeeks         int               `json:"cycle_weeks"`
	IsDeload           bool              `json:"is_deload"`
	IsRestDay          bool              `json:"is_rest_day"`
	Exercises          []PlannedExercise `json:"exercises"`
}

// WeekSchedule is a full week of resolved plans, one per scheduled day.
type WeekSchedule struct {
	WeekType    string `json:"week_type"`
	WeekInCycle int    `json:"week_in_cycle"`
	CycleWeeks  int    `json:"cycle_weeks"`
	Days        []Plan `json:"days"`
}

// weekdayOrder fixes the iteration order for week-level views.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// TodayPlan resolves the workout prescribed for a reference date. A zero
// reference date means now (UTC); a zero start date means the program
// began today. preferredWeekType, when it names a defined key, overrides
// the A/B alternation.
func (s *Scheduler) TodayPlan(start time.Time, preferredWeekType string, reference time.Time) Plan {
	if reference.IsZero() {
		reference = time.Now().UTC()
	}
	state := s.CycleState(reference, start)
	weekType := s.weekTypeFor(state.WeeksElapsed, preferredWeekType)

	if s.sessionStructured {
		dayName := reference.Weekday().String()
		return s.sessionPlan(weekType, dayName, state.WeekInCycle)
	}
	// Parity can name a split the program does not define (e.g. a
	// single-split program on an odd week); resolve to a known key.
	return s.splitPlan(s.knownWeekType(weekType), state.WeekInCycle)
}

// DayPlan resolves a plan for an explicit week type, day and cycle week,
// independent of any date. Legacy split programs ignore dayName.
func (s *Scheduler) DayPlan(weekType, dayName string, weekInCycle int) Plan {
	if s.sessionStructured {
		return s.sessionPlan(s.knownWeekType(weekType), dayName, weekInCycle)
	}
	return s.splitPlan(s.knownWeekType(weekType), weekInCycle)
}

// WeekPlan resolves the full schedule of a week template for a given cycle
// week. Legacy split programs have no day-of-week schedule; the result
// carries their single split plan as the only day.
func (s *Scheduler) WeekPlan(weekType string, weekInCycle int) WeekSchedule {
	weekType = s.knownWeekType(weekType)
	sched := WeekSchedule{
		WeekType:    weekType,
		WeekInCycle: weekInCycle,
		CycleWeeks:  s.cycleWeeks,
		Days:        []Plan{},
	}
	if !s.sessionStructured {
		sched.Days = append(sched.Days, s.splitPlan(weekType, weekInCycle))
		return sched
	}
	template := s.prog.Weeks[weekType]
	for _, day := range weekdayOrder {
		if _, ok := template[day]; !ok {
			continue
		}
		sched.Days = append(sched.Days, s.sessionPlan(weekType, day, weekInCycle))
	}
	return sched
}

// knownWeekType validates a caller-supplied week type or split key and
// falls back to the first defined key (sorted order) when it is unknown,
// or to "A" for completely empty definitions. Callers never see an error
// for a bad selector.
func (s *Scheduler) knownWeekType(weekType string) string {
	if s.sessionStructured {
		if _, ok := s.prog.Weeks[weekType]; ok {
			return weekType
		}
		if keys := sortedKeys(s.prog.Weeks); len(keys) > 0 {
			return keys[0]
		}
		return "A"
	}
	if _, ok := s.prog.Splits[weekType]; ok {
		return weekType
	}
	if keys := sortedKeys(s.prog.Splits); len(keys) > 0 {
		return keys[0]
	}
	return "A"
}

// sessionPlan builds the plan for one day of a session-structured program.
// A day with no session key in the week template is a rest day.
func (s *Scheduler) sessionPlan(weekType, dayName string, weekInCycle int) Plan {
	sessionKey := s.prog.Weeks[weekType][dayName]

	plan := Plan{
		WeekType:    weekType,
		Split:       weekType,
		SessionKey:  sessionKey,
		DayName:     dayName,
		WeekInCycle: weekInCycle,
		CycleWeeks:  s.cycleWeeks,
		IsDeload:    weekInCycle == s.cycleWeeks,
		Exercises:   []PlannedExercise{},
	}

	if sessionKey == "" {
		plan.IsRestDay = true
		plan.SessionName = "Rest Day"
		return plan
	}

	session, ok := s.prog.Sessions[sessionKey]
	if !ok {
		// Template points at an undefined session: degrade to a rest
		// day rather than failing the request.
		plan.IsRestDay = true
		plan.SessionName = "Rest Day"
		return plan
	}

	plan.SessionName = session.Name
	if plan.SessionName == "" {
		plan.SessionName = sessionKey
	}
	plan.SessionDescription = session.Description
	plan.Exercises = resolveExercises(session.Exercises, weekInCycle)
	return plan
}

// Legacy programs that omit per-exercise prescriptions fall back to a
// standard 3+1 shape.
var (
	legacyDefaultSets = FlexInts{3, 3, 3, 2}
	legacyDefaultReps = FlexInts{8, 8, 8, 8}
)

// splitPlan builds the plan for a legacy split program. There is no
// day-of-week schedule and therefore no rest days.
func (s *Scheduler) splitPlan(split string, weekInCycle int) Plan {
	data := s.prog.Splits[split]

	name := data.Name
	if name == "" {
		name = fmt.Sprintf("Split %s", split)
	}

	exercises := make([]PlannedExercise, 0, len(data.Exercises))
	for _, ex := range data.Exercises {
		sets := ex.Sets
		if len(sets) == 0 {
			sets = legacyDefaultSets
		}
		reps := ex.Reps
		if len(reps) == 0 {
			reps = legacyDefaultReps
		}
		exercises = append(exercises, PlannedExercise{
			Name:  exerciseName(ex),
			Sets:  sets.ForWeek(weekInCycle),
			Reps:  reps.ForWeek(weekInCycle),
			Notes: ex.Notes,
		})
	}

	return Plan{
		WeekType:           split,
		Split:              split,
		SessionKey:         split,
		SessionName:        name,
		SessionDescription: data.Description,
		WeekInCycle:        weekInCycle,
		CycleWeeks:         s.cycleWeeks,
		IsDeload:           weekInCycle == s.cycleWeeks,
		Exercises:          exercises,
	}
}

func resolveExercises(exercises []Exercise, weekInCycle int) []PlannedExercise {
	planned := make([]PlannedExercise, 0, len(exercises))
	for _, ex := range exercises {
		planned = append(planned, PlannedExercise{
			Name:  exerciseName(ex),
			Sets:  ex.Sets.ForWeek(weekInCycle),
			Reps:  ex.Reps.ForWeek(weekInCycle),
			Notes: ex.Notes,
		})
	}
	return planned
}

func exerciseName(ex Exercise) string {
	if ex.Name == "" {
		return "Exercise"
	}
	return ex.Name
}
