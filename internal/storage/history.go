// ABOUTME: Workout history repository: workouts, workout exercises, and sets.
// ABOUTME: Cascade deletes mirror the in-memory model; renumber keeps order dense.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/trainlog/internal/models"
)

// InsertWorkout writes a workout row through q.
func InsertWorkout(q Querier, w *models.Workout) error {
	var endTime any
	if w.EndTime != nil {
		endTime = w.EndTime.Format(time.RFC3339)
	}
	_, err := q.Exec(`
		INSERT INTO workouts (id, name, date, end_time, is_finished, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.ID.String(), w.Name, w.Date.Format(time.RFC3339), endTime, w.IsFinished, w.Notes)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

// CreateWorkout stores a new workout in the database.
func (d *DB) CreateWorkout(w *models.Workout) error {
	return InsertWorkout(d.db, w)
}

// UpdateWorkout rewrites the mutable workout fields (end time, finished
// flag, notes, name). Used by the active-workout flow and the importer's
// end-time reconciliation.
func UpdateWorkout(q Querier, w *models.Workout) error {
	var endTime any
	if w.EndTime != nil {
		endTime = w.EndTime.Format(time.RFC3339)
	}
	result, err := q.Exec(`
		UPDATE workouts SET name = ?, date = ?, end_time = ?, is_finished = ?, notes = ?
		WHERE id = ?
	`, w.Name, w.Date.Format(time.RFC3339), endTime, w.IsFinished, w.Notes, w.ID.String())
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", w.ID)
	}
	return nil
}

// GetWorkout retrieves a workout by ID (without exercises).
func (d *DB) GetWorkout(id uuid.UUID) (*models.Workout, error) {
	row := d.db.QueryRow(`
		SELECT id, name, date, end_time, is_finished, notes
		FROM workouts
		WHERE id = ?
	`, id.String())

	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// GetWorkoutDetail retrieves a workout with its exercises and their sets.
func (d *DB) GetWorkoutDetail(id uuid.UUID) (*models.Workout, error) {
	w, err := d.GetWorkout(id)
	if err != nil {
		return nil, err
	}

	w.Exercises, err = LoadWorkoutExercises(d.db, w.ID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkouts retrieves workouts ordered by date descending (most recent
// first). A limit of 0 returns everything.
func (d *DB) ListWorkouts(limit int) ([]*models.Workout, error) {
	query := `
		SELECT id, name, date, end_time, is_finished, notes
		FROM workouts
		ORDER BY date DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// DeleteWorkout removes a workout, its exercises, and their sets (cascade).
func (d *DB) DeleteWorkout(id uuid.UUID) error {
	result, err := d.db.Exec("DELETE FROM workouts WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", id)
	}
	return nil
}

// FindWorkoutByNameAndDate looks for an existing workout with the exact
// name and start timestamp. Returns (nil, nil) when there is no match.
// The importer uses this for cross-run duplicate-workout prevention.
func FindWorkoutByNameAndDate(q Querier, name string, date time.Time) (*models.Workout, error) {
	row := q.QueryRow(`
		SELECT id, name, date, end_time, is_finished, notes
		FROM workouts
		WHERE name = ? AND date = ?
	`, name, date.Format(time.RFC3339))

	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find workout by name and date: %w", err)
	}
	return w, nil
}

// InsertWorkoutExercise writes a workout-exercise row through q.
func InsertWorkoutExercise(q Querier, we *models.WorkoutExercise) error {
	_, err := q.Exec(`
		INSERT INTO workout_exercises (id, workout_id, exercise_id, position, notes)
		VALUES (?, ?, ?, ?, ?)
	`, we.ID.String(), we.WorkoutID.String(), we.ExerciseID, we.Position, we.Notes)
	if err != nil {
		return fmt.Errorf("insert workout exercise: %w", err)
	}
	return nil
}

// AddWorkoutExercise appends an exercise to a workout.
func (d *DB) AddWorkoutExercise(we *models.WorkoutExercise) error {
	return InsertWorkoutExercise(d.db, we)
}

// InsertSet writes a set row through q.
func InsertSet(q Querier, s *models.ExerciseSet) error {
	_, err := q.Exec(`
		INSERT INTO exercise_sets (id, workout_exercise_id, reps, weight, set_type, rpe, notes, position, is_done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID.String(), s.WorkoutExerciseID.String(), s.Reps, s.Weight, string(s.Type), s.RPE, s.Notes, s.Position, s.IsDone)
	if err != nil {
		return fmt.Errorf("insert set: %w", err)
	}
	return nil
}

// AddSet appends a set to a workout exercise.
func (d *DB) AddSet(s *models.ExerciseSet) error {
	return InsertSet(d.db, s)
}

// UpdateSet rewrites a set's mutable fields.
func (d *DB) UpdateSet(s *models.ExerciseSet) error {
	result, err := d.db.Exec(`
		UPDATE exercise_sets SET reps = ?, weight = ?, set_type = ?, rpe = ?, notes = ?, is_done = ?
		WHERE id = ?
	`, s.Reps, s.Weight, string(s.Type), s.RPE, s.Notes, s.IsDone, s.ID.String())
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", s.ID)
	}
	return nil
}

// DeleteSet removes a set and renumbers its siblings so positions stay
// dense, all in one transaction.
func (d *DB) DeleteSet(id uuid.UUID) error {
	return d.WithTx(func(tx *sql.Tx) error {
		var weID string
		err := tx.QueryRow("SELECT workout_exercise_id FROM exercise_sets WHERE id = ?", id.String()).Scan(&weID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("not found: %s", id)
		}
		if err != nil {
			return fmt.Errorf("delete set: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM exercise_sets WHERE id = ?", id.String()); err != nil {
			return fmt.Errorf("delete set: %w", err)
		}
		weUUID, err := uuid.Parse(weID)
		if err != nil {
			return fmt.Errorf("parse workout exercise id: %w", err)
		}
		return RenumberSets(tx, weUUID)
	})
}

// RenumberSets reassigns a dense zero-based position sequence to the sets
// of one workout exercise, ordered by their current position.
func RenumberSets(q Querier, workoutExerciseID uuid.UUID) error {
	rows, err := q.Query(
		"SELECT id FROM exercise_sets WHERE workout_exercise_id = ? ORDER BY position, id",
		workoutExerciseID.String(),
	)
	if err != nil {
		return fmt.Errorf("renumber sets: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan set id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("renumber sets: %w", err)
	}
	rows.Close()

	for i, id := range ids {
		if _, err := q.Exec("UPDATE exercise_sets SET position = ? WHERE id = ?", i, id); err != nil {
			return fmt.Errorf("renumber set %s: %w", id, err)
		}
	}
	return nil
}

// LoadWorkoutExercises retrieves all exercises of a workout with their sets,
// ordered by position.
func LoadWorkoutExercises(q Querier, workoutID uuid.UUID) ([]models.WorkoutExercise, error) {
	rows, err := q.Query(`
		SELECT id, workout_id, exercise_id, position, notes
		FROM workout_exercises
		WHERE workout_id = ?
		ORDER BY position
	`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("load workout exercises: %w", err)
	}

	var exercises []models.WorkoutExercise
	for rows.Next() {
		var we models.WorkoutExercise
		var idStr, workoutIDStr string
		var notes sql.NullString
		if err := rows.Scan(&idStr, &workoutIDStr, &we.ExerciseID, &we.Position, &notes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		we.ID, _ = uuid.Parse(idStr)
		we.WorkoutID, _ = uuid.Parse(workoutIDStr)
		if notes.Valid {
			we.Notes = &notes.String
		}
		exercises = append(exercises, we)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load workout exercises: %w", err)
	}
	rows.Close()

	for i := range exercises {
		sets, err := LoadSets(q, exercises[i].ID)
		if err != nil {
			return nil, err
		}
		exercises[i].Sets = sets
	}
	return exercises, nil
}

// LoadSets retrieves the sets of one workout exercise ordered by position.
func LoadSets(q Querier, workoutExerciseID uuid.UUID) ([]models.ExerciseSet, error) {
	rows, err := q.Query(`
		SELECT id, workout_exercise_id, reps, weight, set_type, rpe, notes, position, is_done
		FROM exercise_sets
		WHERE workout_exercise_id = ?
		ORDER BY position
	`, workoutExerciseID.String())
	if err != nil {
		return nil, fmt.Errorf("load sets: %w", err)
	}
	defer rows.Close()

	var sets []models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		var idStr, weIDStr, setType string
		var rpe sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(&idStr, &weIDStr, &s.Reps, &s.Weight, &setType, &rpe, &notes, &s.Position, &s.IsDone); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		s.ID, _ = uuid.Parse(idStr)
		s.WorkoutExerciseID, _ = uuid.Parse(weIDStr)
		s.Type = models.SetType(setType)
		if rpe.Valid {
			s.RPE = &rpe.Float64
		}
		if notes.Valid {
			s.Notes = &notes.String
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// CountWorkouts returns the total number of workout rows.
func (d *DB) CountWorkouts() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// scanWorkout scans a single row into a Workout struct.
func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var idStr, date string
	var endTime, notes sql.NullString

	err := row.Scan(&idStr, &w.Name, &date, &endTime, &w.IsFinished, &notes)
	if err != nil {
		return nil, err
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Date, _ = time.Parse(time.RFC3339, date)
	if endTime.Valid {
		t, err := time.Parse(time.RFC3339, endTime.String)
		if err == nil {
			w.EndTime = &t
		}
	}
	if notes.Valid {
		w.Notes = &notes.String
	}

	return &w, nil
}
