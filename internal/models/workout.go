// ABOUTME: Workout history models: Workout, WorkoutExercise, ExerciseSet.
// ABOUTME: Sibling ordering is dense and zero-based; RenumberSets repairs it.
package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SetType classifies a set within a workout exercise.
type SetType string

const (
	SetWarmup  SetType = "warmup"
	SetWorking SetType = "working"
	SetDrop    SetType = "drop"
	SetFailure SetType = "failure"
)

// AllSetTypes returns all valid set types.
var AllSetTypes = []SetType{SetWarmup, SetWorking, SetDrop, SetFailure}

// IsValidSetType checks if a string is a valid set type.
func IsValidSetType(s string) bool {
	for _, st := range AllSetTypes {
		if string(st) == s {
			return true
		}
	}
	return false
}

// Workout represents one training session.
type Workout struct {
	ID         uuid.UUID
	Name       string
	Date       time.Time
	EndTime    *time.Time
	IsFinished bool
	Notes      *string
	Exercises  []WorkoutExercise // Populated when fetching full detail
}

// NewWorkout creates a new Workout with a generated UUID.
func NewWorkout(name string, date time.Time) *Workout {
	return &Workout{
		ID:   uuid.New(),
		Name: name,
		Date: date,
	}
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// WithEndTime sets the end timestamp.
func (w *Workout) WithEndTime(t time.Time) *Workout {
	w.EndTime = &t
	return w
}

// WorkoutExercise is one exercise slot within a workout. ExerciseID points
// at the catalog by string key; the catalog row may be created lazily by
// the importer, so this is not a hard foreign key.
type WorkoutExercise struct {
	ID         uuid.UUID
	WorkoutID  uuid.UUID
	ExerciseID string
	Position   int
	Notes      *string
	Sets       []ExerciseSet
}

// NewWorkoutExercise creates a new WorkoutExercise at the given position.
func NewWorkoutExercise(workoutID uuid.UUID, exerciseID string, position int) *WorkoutExercise {
	return &WorkoutExercise{
		ID:         uuid.New(),
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Position:   position,
	}
}

// ExerciseSet is one set performed within a workout exercise.
type ExerciseSet struct {
	ID                uuid.UUID
	WorkoutExerciseID uuid.UUID
	Reps              int
	Weight            float64
	Type              SetType
	RPE               *float64
	Notes             *string
	Position          int
	IsDone            bool
}

// NewExerciseSet creates a new ExerciseSet at the given position.
func NewExerciseSet(workoutExerciseID uuid.UUID, reps int, weight float64, setType SetType, position int) *ExerciseSet {
	return &ExerciseSet{
		ID:                uuid.New(),
		WorkoutExerciseID: workoutExerciseID,
		Reps:              reps,
		Weight:            weight,
		Type:              setType,
		Position:          position,
	}
}

// WithRPE sets the rate of perceived exertion.
func (s *ExerciseSet) WithRPE(rpe float64) *ExerciseSet {
	s.RPE = &rpe
	return s
}

// RenumberSets sorts sets by their current position and reassigns a dense
// zero-based sequence. Called after any insert or delete so positions never
// carry gaps or duplicates.
func RenumberSets(sets []ExerciseSet) {
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].Position < sets[j].Position
	})
	for i := range sets {
		sets[i].Position = i
	}
}

// RenumberExercises reassigns dense zero-based positions to workout exercises.
func RenumberExercises(exercises []WorkoutExercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].Position < exercises[j].Position
	})
	for i := range exercises {
		exercises[i].Position = i
	}
}
