// ABOUTME: Row decoder for Strong CSV exports.
// ABOUTME: Converts 1-based set orders to zero-based canonical rows.
package importer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/trainlog/internal/models"
)

// Strong export columns.
const (
	strongColDate         = "Date"
	strongColWorkoutName  = "Workout Name"
	strongColWorkoutNotes = "Workout Notes"
	strongColExercise     = "Exercise Name"
	strongColSetOrder     = "Set Order"
	strongColWeight       = "Weight"
	strongColReps         = "Reps"
	strongColRPE          = "RPE"
	strongColNotes        = "Notes"
)

// strongDateLayout is Strong's fixed, locale-invariant timestamp grammar.
const strongDateLayout = "2006-01-02 15:04:05"

// parseStrongRows decodes Strong data rows into canonical parsed rows.
// Strong has no set type column, so every set is a working set, and its
// Set Order is 1-based.
func parseStrongRows(records [][]string, cols map[string]int, summary *Summary) []parsedRow {
	var rows []parsedRow

	for i, record := range records {
		line := i + 2

		name := field(record, cols, strongColWorkoutName)
		rawDate := field(record, cols, strongColDate)
		exercise := field(record, cols, strongColExercise)
		rawOrder := field(record, cols, strongColSetOrder)
		rawWeight := field(record, cols, strongColWeight)
		rawReps := field(record, cols, strongColReps)

		if name == "" || rawDate == "" || exercise == "" || rawOrder == "" || rawWeight == "" || rawReps == "" {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, "missing required field"})
			continue
		}

		start, err := time.Parse(strongDateLayout, rawDate)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad Date %q", rawDate)})
			continue
		}
		order, err := strconv.Atoi(rawOrder)
		if err != nil || order < 1 {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad Set Order %q", rawOrder)})
			continue
		}
		weight, err := strconv.ParseFloat(rawWeight, 64)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad Weight %q", rawWeight)})
			continue
		}
		reps, err := strconv.Atoi(rawReps)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad Reps %q", rawReps)})
			continue
		}

		row := parsedRow{
			line:         line,
			workoutName:  name,
			rawDate:      rawDate,
			start:        start,
			workoutNotes: field(record, cols, strongColWorkoutNotes),
			exerciseName: exercise,
			setOrder:     order - 1,
			setType:      models.SetWorking,
			weight:       weight,
			reps:         reps,
			setNotes:     field(record, cols, strongColNotes),
		}

		if rawRPE := field(record, cols, strongColRPE); rawRPE != "" {
			if rpe, err := strconv.ParseFloat(rawRPE, 64); err == nil {
				row.rpe = &rpe
			}
		}

		rows = append(rows, row)
	}

	return rows
}
