// ABOUTME: Row decoder for Hevy CSV exports.
// ABOUTME: Produces canonical parsed rows; malformed rows are skipped, not fatal.
package importer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/trainlog/internal/models"
)

// Hevy export columns.
const (
	hevyColTitle        = "title"
	hevyColStartTime    = "start_time"
	hevyColEndTime      = "end_time"
	hevyColDescription  = "description"
	hevyColExercise     = "exercise_title"
	hevyColExerciseNote = "exercise_notes"
	hevyColSetIndex     = "set_index"
	hevyColSetType      = "set_type"
	hevyColWeight       = "weight_lbs"
	hevyColReps         = "reps"
	hevyColRPE          = "rpe"
)

// hevyDateLayout is Hevy's fixed, locale-invariant timestamp grammar.
const hevyDateLayout = "02 Jan 2006, 15:04"

// hevySetTypes maps Hevy's set type labels onto ours. Unknown labels fall
// back to a working set.
var hevySetTypes = map[string]models.SetType{
	"warmup":  models.SetWarmup,
	"normal":  models.SetWorking,
	"dropset": models.SetDrop,
	"failure": models.SetFailure,
}

// parseHevyRows decodes Hevy data rows into canonical parsed rows. A row
// missing its title, timestamp, exercise name, set index, weight, or reps
// is skipped individually; set_index is already zero-based.
func parseHevyRows(records [][]string, cols map[string]int, summary *Summary) []parsedRow {
	var rows []parsedRow

	for i, record := range records {
		line := i + 2 // 1-based, after the header row

		title := field(record, cols, hevyColTitle)
		rawStart := field(record, cols, hevyColStartTime)
		exercise := field(record, cols, hevyColExercise)
		rawIndex := field(record, cols, hevyColSetIndex)
		rawWeight := field(record, cols, hevyColWeight)
		rawReps := field(record, cols, hevyColReps)

		if title == "" || rawStart == "" || exercise == "" || rawIndex == "" || rawWeight == "" || rawReps == "" {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, "missing required field"})
			continue
		}

		start, err := time.Parse(hevyDateLayout, rawStart)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad start_time %q", rawStart)})
			continue
		}
		setOrder, err := strconv.Atoi(rawIndex)
		if err != nil || setOrder < 0 {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad set_index %q", rawIndex)})
			continue
		}
		weight, err := strconv.ParseFloat(rawWeight, 64)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad weight_lbs %q", rawWeight)})
			continue
		}
		reps, err := strconv.Atoi(rawReps)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{line, fmt.Sprintf("bad reps %q", rawReps)})
			continue
		}

		row := parsedRow{
			line:          line,
			workoutName:   title,
			rawDate:       rawStart,
			start:         start,
			workoutNotes:  field(record, cols, hevyColDescription),
			exerciseName:  exercise,
			exerciseNotes: field(record, cols, hevyColExerciseNote),
			setOrder:      setOrder,
			setType:       models.SetWorking,
			weight:        weight,
			reps:          reps,
		}

		if st, ok := hevySetTypes[field(record, cols, hevyColSetType)]; ok {
			row.setType = st
		}
		if rawEnd := field(record, cols, hevyColEndTime); rawEnd != "" {
			if end, err := time.Parse(hevyDateLayout, rawEnd); err == nil {
				row.end = &end
			}
		}
		if rawRPE := field(record, cols, hevyColRPE); rawRPE != "" {
			if rpe, err := strconv.ParseFloat(rawRPE, 64); err == nil {
				row.rpe = &rpe
			}
		}

		rows = append(rows, row)
	}

	return rows
}
