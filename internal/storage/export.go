// ABOUTME: Export and import functionality for workout history data.
// ABOUTME: Supports JSON and YAML export formats for backup and restore.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/trainlog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for workout history.
type ExportData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Tool       string            `json:"tool"`
	Workouts   []*models.Workout `json:"workouts"`
}

// GetAllData retrieves the full workout history for export.
func (d *DB) GetAllData() (*ExportData, error) {
	workouts, err := d.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	for _, w := range workouts {
		w.Exercises, err = LoadWorkoutExercises(d.db, w.ID)
		if err != nil {
			return nil, fmt.Errorf("load exercises for %s: %w", w.ID, err)
		}
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "trainlog",
		Workouts:   workouts,
	}, nil
}

// ImportData restores workouts from an export, all inside one transaction.
func (d *DB) ImportData(data *ExportData) error {
	return d.WithTx(func(tx *sql.Tx) error {
		for _, w := range data.Workouts {
			if err := InsertWorkout(tx, w); err != nil {
				return fmt.Errorf("import workout: %w", err)
			}
			for i := range w.Exercises {
				we := &w.Exercises[i]
				we.WorkoutID = w.ID
				if err := InsertWorkoutExercise(tx, we); err != nil {
					return fmt.Errorf("import workout exercise: %w", err)
				}
				for j := range we.Sets {
					s := &we.Sets[j]
					s.WorkoutExerciseID = we.ID
					if err := InsertSet(tx, s); err != nil {
						return fmt.Errorf("import set: %w", err)
					}
				}
			}
		}
		return nil
	})
}

// ExportJSON exports the workout history as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports the workout history as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string        `yaml:"version"`
		ExportedAt string        `yaml:"exported_at"`
		Tool       string        `yaml:"tool"`
		Workouts   []yamlWorkout `yaml:"workouts"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:         w.ID.String()[:8],
			Name:       w.Name,
			Date:       w.Date.Format(time.RFC3339),
			IsFinished: w.IsFinished,
		}
		if w.EndTime != nil {
			yw.EndTime = w.EndTime.Format(time.RFC3339)
		}
		if w.Notes != nil {
			yw.Notes = *w.Notes
		}
		for _, we := range w.Exercises {
			ywe := yamlWorkoutExercise{Exercise: we.ExerciseID}
			if we.Notes != nil {
				ywe.Notes = *we.Notes
			}
			for _, s := range we.Sets {
				ys := yamlSet{
					Reps:   s.Reps,
					Weight: s.Weight,
					Type:   string(s.Type),
					IsDone: s.IsDone,
				}
				if s.RPE != nil {
					ys.RPE = *s.RPE
				}
				ywe.Sets = append(ywe.Sets, ys)
			}
			yw.Exercises = append(yw.Exercises, ywe)
		}
		yamlData.Workouts = append(yamlData.Workouts, yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID         string                `yaml:"id"`
	Name       string                `yaml:"name"`
	Date       string                `yaml:"date"`
	EndTime    string                `yaml:"end_time,omitempty"`
	IsFinished bool                  `yaml:"is_finished"`
	Notes      string                `yaml:"notes,omitempty"`
	Exercises  []yamlWorkoutExercise `yaml:"exercises,omitempty"`
}

type yamlWorkoutExercise struct {
	Exercise string    `yaml:"exercise"`
	Notes    string    `yaml:"notes,omitempty"`
	Sets     []yamlSet `yaml:"sets,omitempty"`
}

type yamlSet struct {
	Reps   int     `yaml:"reps"`
	Weight float64 `yaml:"weight"`
	Type   string  `yaml:"type"`
	RPE    float64 `yaml:"rpe,omitempty"`
	IsDone bool    `yaml:"is_done"`
}

// ImportJSON imports workout history from JSON bytes.
func (d *DB) ImportJSON(data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(&exportData)
}
