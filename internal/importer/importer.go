// ABOUTME: CSV log import and merge engine for third-party workout exports.
// ABOUTME: Detects the vendor format, merges into history, and dedups sets by order index.
package importer

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/harperreed/trainlog/internal/models"
	"github.com/harperreed/trainlog/internal/storage"
)

// Format identifies a recognized vendor export schema.
type Format string

const (
	FormatHevy   Format = "hevy"
	FormatStrong Format = "strong"
)

// ErrUnknownFormat is returned when the CSV header matches neither vendor
// schema. Nothing is written in that case.
var ErrUnknownFormat = errors.New("unrecognized export format")

// SkippedRow records one malformed row that was dropped during parsing.
// Bad rows never abort the file; they are reported in the summary.
type SkippedRow struct {
	Line   int
	Reason string
}

// Summary reports what one import invocation did.
type Summary struct {
	Format            Format
	Workouts          int      // new workout rows created
	MergedWorkouts    int      // existing workouts extended (Strong only)
	Exercises         int      // workout-exercise rows created
	Sets              int      // sets inserted
	DuplicateSets     int      // rows dropped because their order index was taken
	NewCatalogEntries []string // exercise names lazily added to the catalog
	Skipped           []SkippedRow
}

// parsedRow is the canonical (workout, exercise, set) triple produced by the
// format-specific decoders. All optional handling lives in the decoders;
// a parsedRow always has the required fields populated.
type parsedRow struct {
	line          int
	workoutName   string
	rawDate       string // merge key component, as it appeared in the file
	start         time.Time
	end           *time.Time
	workoutNotes  string
	exerciseName  string
	exerciseNotes string
	setOrder      int // zero-based
	setType       models.SetType
	weight        float64
	reps          int
	rpe           *float64
	setNotes      string
}

// Importer drives the log import state machine end to end.
type Importer struct {
	store *storage.DB
}

// New creates an Importer writing through the given store.
func New(store *storage.DB) *Importer {
	return &Importer{store: store}
}

// ImportFile reads a vendor CSV export from disk and merges it into the
// workout history. The file handle is held only for the duration of the
// read; all writes happen afterwards in one transaction.
func (im *Importer) ImportFile(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return im.Import(bytes.NewReader(data))
}

// Import parses a vendor CSV export and merges it into the workout history.
// Everything for the file is written in a single transaction; on any
// persist failure the store is left exactly as it was.
func (im *Importer) Import(r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrUnknownFormat
	}

	cols := headerIndex(records[0])
	summary := &Summary{}

	var rows []parsedRow
	switch {
	case hasColumns(cols, hevyColStartTime, hevyColExercise):
		summary.Format = FormatHevy
		rows = parseHevyRows(records[1:], cols, summary)
	case hasColumns(cols, strongColWorkoutName, strongColExercise):
		summary.Format = FormatStrong
		rows = parseStrongRows(records[1:], cols, summary)
	default:
		return nil, ErrUnknownFormat
	}

	if err := im.persist(rows, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// workoutBuffer accumulates one workout's rows before persisting.
type workoutBuffer struct {
	record     *models.Workout
	existing   bool // row already persisted in the store (Strong merge)
	endChanged bool
	order      int // next exercise position
	exercises  []*exerciseBuffer
	byExercise map[string]*exerciseBuffer // catalog id -> buffer
}

// exerciseBuffer accumulates sets for one workout exercise.
type exerciseBuffer struct {
	record   *models.WorkoutExercise
	existing bool
	occupied map[int]bool // set order indexes already taken
	newSets  []*models.ExerciseSet
}

// persist merges the parsed rows into the store inside one transaction.
// A workout within the file is keyed by (name, raw timestamp string); for
// Strong files an existing store workout with the same name and date is
// extended instead of duplicated. A row whose set order index is already
// occupied within its workout exercise is dropped as a duplicate.
func (im *Importer) persist(rows []parsedRow, summary *Summary) error {
	if len(rows) == 0 {
		return nil
	}

	return im.store.WithTx(func(tx *sql.Tx) error {
		buffers := make(map[string]*workoutBuffer)
		var keys []string // preserve file order

		for _, row := range rows {
			key := row.workoutName + "\x00" + row.rawDate
			wb, ok := buffers[key]
			if !ok {
				var err error
				wb, err = im.newWorkoutBuffer(tx, row, summary.Format)
				if err != nil {
					return err
				}
				buffers[key] = wb
				keys = append(keys, key)
			} else {
				mergeWorkoutFields(wb, row)
			}

			exerciseID, created, err := storage.FindOrCreateExerciseID(tx, row.exerciseName)
			if err != nil {
				return err
			}
			if created {
				summary.NewCatalogEntries = append(summary.NewCatalogEntries, row.exerciseName)
			}

			eb, ok := wb.byExercise[exerciseID]
			if !ok {
				we := models.NewWorkoutExercise(wb.record.ID, exerciseID, wb.order)
				if row.exerciseNotes != "" {
					we.Notes = &row.exerciseNotes
				}
				wb.order++
				eb = &exerciseBuffer{record: we, occupied: make(map[int]bool)}
				wb.exercises = append(wb.exercises, eb)
				wb.byExercise[exerciseID] = eb
			}

			if eb.occupied[row.setOrder] {
				summary.DuplicateSets++
				continue
			}
			eb.occupied[row.setOrder] = true

			s := models.NewExerciseSet(eb.record.ID, row.reps, row.weight, row.setType, row.setOrder)
			s.RPE = row.rpe
			s.IsDone = true
			if row.setNotes != "" {
				s.Notes = &row.setNotes
			}
			eb.newSets = append(eb.newSets, s)
		}

		for _, key := range keys {
			wb := buffers[key]
			if wb.existing {
				extended := wb.endChanged
				for _, eb := range wb.exercises {
					if !eb.existing || len(eb.newSets) > 0 {
						extended = true
					}
				}
				if extended {
					summary.MergedWorkouts++
				}
				if wb.endChanged {
					if err := storage.UpdateWorkout(tx, wb.record); err != nil {
						return err
					}
				}
			} else {
				if err := storage.InsertWorkout(tx, wb.record); err != nil {
					return err
				}
				summary.Workouts++
			}

			for _, eb := range wb.exercises {
				if !eb.existing {
					if err := storage.InsertWorkoutExercise(tx, eb.record); err != nil {
						return err
					}
					summary.Exercises++
				}
				for _, s := range eb.newSets {
					if err := storage.InsertSet(tx, s); err != nil {
						return err
					}
					summary.Sets++
				}
				// Skipped rows leave gaps; renumber keeps positions dense.
				if len(eb.newSets) > 0 {
					if err := storage.RenumberSets(tx, eb.record.ID); err != nil {
						return err
					}
				}
			}
		}

		return nil
	})
}

// newWorkoutBuffer starts a buffer for a workout key seen for the first
// time in this file. Strong files check the store for an existing workout
// with the same name and date and extend it; Hevy files do not, matching
// the vendor tools' own behavior.
func (im *Importer) newWorkoutBuffer(tx *sql.Tx, row parsedRow, format Format) (*workoutBuffer, error) {
	if format == FormatStrong {
		existing, err := storage.FindWorkoutByNameAndDate(tx, row.workoutName, row.start)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			wb := &workoutBuffer{
				record:     existing,
				existing:   true,
				byExercise: make(map[string]*exerciseBuffer),
			}
			persisted, err := storage.LoadWorkoutExercises(tx, existing.ID)
			if err != nil {
				return nil, err
			}
			for i := range persisted {
				we := persisted[i]
				eb := &exerciseBuffer{
					record:   &we,
					existing: true,
					occupied: make(map[int]bool),
				}
				for _, s := range we.Sets {
					eb.occupied[s.Position] = true
				}
				wb.exercises = append(wb.exercises, eb)
				wb.byExercise[we.ExerciseID] = eb
			}
			wb.order = len(wb.exercises)
			mergeWorkoutFields(wb, row)
			return wb, nil
		}
	}

	w := models.NewWorkout(row.workoutName, row.start)
	w.IsFinished = true
	if row.end != nil {
		w.EndTime = row.end
	}
	if row.workoutNotes != "" {
		w.Notes = &row.workoutNotes
	}
	return &workoutBuffer{
		record:     w,
		byExercise: make(map[string]*exerciseBuffer),
	}, nil
}

// mergeWorkoutFields reconciles the workout-level fields across the rows of
// one workout: earliest start wins, latest end wins, notes fill once.
func mergeWorkoutFields(wb *workoutBuffer, row parsedRow) {
	if row.start.Before(wb.record.Date) {
		wb.record.Date = row.start
	}
	if row.end != nil && (wb.record.EndTime == nil || row.end.After(*wb.record.EndTime)) {
		wb.record.EndTime = row.end
		if wb.existing {
			wb.endChanged = true
		}
	}
	if wb.record.Notes == nil && row.workoutNotes != "" {
		wb.record.Notes = &row.workoutNotes
	}
}

// headerIndex maps trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func hasColumns(cols map[string]int, names ...string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}
	return true
}

// field returns the trimmed cell value for a named column, or "" when the
// row is short or the column is absent.
func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
