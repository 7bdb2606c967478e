package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsInserted   int
	WorkoutsDuplicated int
	SetsInserted       int64
	RowsRejected       int
}

// Importer reads workout history CSV files from an export directory and
// inserts them into the database for a single user.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file
// is processed on every run.
func New(db *storage.DB, state *StateDB, userID int, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, userID: userID, log: log, dryRun: dryRun}
}

// Import processes all .csv files under the given directory, in name order.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := imp.importFile(ctx, path, name); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("file import failed", "file", name, "error", err)
			continue
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path, relPath string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var hash string
	if imp.state != nil {
		hash, err = hashFile(path)
		if err != nil {
			return fmt.Errorf("hashing: %w", err)
		}
		done, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Info("skipping file (already imported)", "file", relPath)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	rows, parseErrs := ParseCSV(f)
	f.Close()

	imp.stats.RowsRejected += len(parseErrs)
	for _, perr := range parseErrs {
		imp.log.Warn("rejected row", "file", relPath, "error", perr)
	}
	if len(rows) == 0 && len(parseErrs) > 0 {
		return fmt.Errorf("no usable rows (%d rejected)", len(parseErrs))
	}

	if err := imp.insertWorkouts(ctx, rows); err != nil {
		return err
	}

	imp.stats.FilesProcessed++
	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("recording state: %w", err)
		}
	}
	return nil
}

// insertWorkouts groups parsed rows into one workout per (date, name) and
// inserts each with its sets. Workouts already present are skipped.
func (imp *Importer) insertWorkouts(ctx context.Context, rows []Row) error {
	type key struct {
		date string
		name string
	}
	grouped := map[key][]Row{}
	var order []key
	for _, r := range rows {
		k := key{date: r.Date.Format("2006-01-02"), name: r.Workout}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], r)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].name < order[j].name
	})

	for _, k := range order {
		sets := grouped[k]
		first := sets[0]

		exists, err := imp.db.WorkoutLogExists(ctx, imp.userID, first.Date, first.Workout)
		if err != nil {
			return err
		}
		if exists {
			imp.stats.WorkoutsDuplicated++
			continue
		}

		if imp.dryRun {
			imp.stats.WorkoutsInserted++
			imp.stats.SetsInserted += int64(len(sets))
			continue
		}

		workoutID, err := imp.db.InsertWorkoutLog(ctx, models.WorkoutLog{
			UserID:      imp.userID,
			Date:        first.Date,
			Name:        first.Workout,
			WeekInCycle: first.WeekInCycle,
			WeekType:    first.WeekType,
			Notes:       first.Notes,
		})
		if err != nil {
			return fmt.Errorf("inserting workout %s %s: %w", k.date, k.name, err)
		}

		setRows := make([]models.SetLog, 0, len(sets))
		for _, r := range sets {
			setRows = append(setRows, models.SetLog{
				WorkoutLogID: workoutID,
				ExerciseName: r.Exercise,
				SetNumber:    r.SetNumber,
				Reps:         r.Reps,
				WeightKg:     r.WeightKg,
				RPE:          r.RPE,
			})
		}
		inserted, err := imp.db.InsertSetLogs(ctx, setRows)
		if err != nil {
			return fmt.Errorf("inserting sets for %s %s: %w", k.date, k.name, err)
		}
		imp.stats.WorkoutsInserted++
		imp.stats.SetsInserted += inserted
	}
	return nil
}
