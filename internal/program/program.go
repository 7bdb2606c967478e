package program

import (
	"encoding/json"
	"os"
	"sort"
)

// Program is a training program definition as loaded from a JSON file.
// Two shapes exist: session-structured programs carry both Weeks and
// Sessions; legacy programs carry only Splits.
type Program struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	CycleWeeks  int                     `json:"cycle_weeks"`
	Weeks       map[string]WeekTemplate `json:"weeks,omitempty"`
	Sessions    map[string]Session      `json:"sessions,omitempty"`
	Splits      map[string]Session      `json:"splits,omitempty"`
}

// WeekTemplate maps a weekday name ("Monday") to a session key.
// Days missing from the template are rest days.
type WeekTemplate map[string]string

// Session is a named, reusable workout: an ordered list of exercises.
type Session struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Exercises   []Exercise `json:"exercises"`
}

// Exercise prescribes sets and reps, either as a single value or as one
// value per week of the cycle.
type Exercise struct {
	Name  string   `json:"name"`
	Sets  FlexInts `json:"sets"`
	Reps  FlexInts `json:"reps"`
	Notes string   `json:"notes,omitempty"`
}

// FlexInts accepts either a JSON number or a JSON array of numbers.
type FlexInts []int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInts) UnmarshalJSON(data []byte) error {
	var list []int
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single int
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = FlexInts{single}
	return nil
}

// MarshalJSON implements json.Marshaler. A single value round-trips as a
// bare number, matching the input shape.
func (f FlexInts) MarshalJSON() ([]byte, error) {
	if len(f) == 1 {
		return json.Marshal(f[0])
	}
	return json.Marshal([]int(f))
}

// ForWeek picks the value for a 1-indexed week of the cycle, clamping to
// the last defined entry when the week runs past the list (a short list
// "holds" its final value) and to the first on underflow.
func (f FlexInts) ForWeek(weekInCycle int) int {
	if len(f) == 0 {
		return 0
	}
	idx := weekInCycle - 1
	if idx >= len(f) {
		idx = len(f) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return f[idx]
}

// Load reads a program definition from a JSON file. A missing or
// unreadable file is not an error: the built-in default program is
// returned instead, so a scheduling miss never breaks a page render.
func Load(path string) Program {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	return p
}

// sortedKeys returns map keys in a stable (sorted) order, used wherever a
// "first available key" fallback is needed.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
