package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Row is a single parsed set from a history CSV.
type Row struct {
	Date        time.Time
	Workout     string
	Exercise    string
	SetNumber   int
	Reps        int
	WeightKg    float64
	RPE         *float64
	WeekType    string
	WeekInCycle int
	Notes       string
}

// requiredColumns must all be present in the CSV header.
var requiredColumns = []string{"date", "workout", "exercise", "reps", "weight_kg"}

// ParseCSV reads a workout history CSV. The first record is the header;
// column order is free. Optional columns: set, rpe, week_type, week, notes.
// Rows that fail to parse are returned alongside the good ones so the
// caller can count and report them.
func ParseCSV(r io.Reader) ([]Row, []error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("reading header: %w", err)}
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, []error{fmt.Errorf("missing required column %q", name)}
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []Row
	var errs []error
	setByWorkout := map[string]int{}
	line := 1

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		date, err := time.Parse("2006-01-02", field(record, "date"))
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: bad date: %w", line, err))
			continue
		}

		reps, err := strconv.Atoi(field(record, "reps"))
		if err != nil || reps < 1 {
			errs = append(errs, fmt.Errorf("line %d: bad reps %q", line, field(record, "reps")))
			continue
		}

		weight, err := strconv.ParseFloat(field(record, "weight_kg"), 64)
		if err != nil || weight < 0 {
			errs = append(errs, fmt.Errorf("line %d: bad weight %q", line, field(record, "weight_kg")))
			continue
		}

		row := Row{
			Date:     date,
			Workout:  field(record, "workout"),
			Exercise: field(record, "exercise"),
			Reps:     reps,
			WeightKg: weight,
			WeekType: field(record, "week_type"),
			Notes:    field(record, "notes"),
		}
		if row.Workout == "" || row.Exercise == "" {
			errs = append(errs, fmt.Errorf("line %d: empty workout or exercise name", line))
			continue
		}

		if v := field(record, "set"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				errs = append(errs, fmt.Errorf("line %d: bad set number %q", line, v))
				continue
			}
			row.SetNumber = n
		} else {
			// Auto-number sets within each workout day + exercise.
			key := date.Format("2006-01-02") + "|" + row.Workout + "|" + row.Exercise
			setByWorkout[key]++
			row.SetNumber = setByWorkout[key]
		}

		if v := field(record, "rpe"); v != "" {
			rpe, err := strconv.ParseFloat(v, 64)
			if err != nil || rpe < 1 || rpe > 10 {
				errs = append(errs, fmt.Errorf("line %d: bad rpe %q", line, v))
				continue
			}
			row.RPE = &rpe
		}

		if v := field(record, "week"); v != "" {
			n, err := strconv.Atoi(v)
			if err == nil && n >= 1 {
				row.WeekInCycle = n
			}
		}

		rows = append(rows, row)
	}

	return rows, errs
}
