// ABOUTME: Exercise catalog repository: core rows plus muscle/instruction/image children.
// ABOUTME: Includes the find-or-create bridge used by the log importer.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/trainlog/internal/models"
)

// InsertExercise writes one exercise and all of its child rows through q,
// which is the seed batch transaction during catalog seeding.
func InsertExercise(q Querier, ex *models.Exercise) error {
	var force, mechanic, equipment any
	if ex.Force != nil {
		force = string(*ex.Force)
	}
	if ex.Mechanic != nil {
		mechanic = string(*ex.Mechanic)
	}
	if ex.Equipment != nil {
		equipment = string(*ex.Equipment)
	}

	_, err := q.Exec(`
		INSERT INTO exercises (id, name, force, level, mechanic, equipment, category, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ex.ID, ex.Name, force, string(ex.Level), mechanic, equipment, string(ex.Category), ex.Frequency)
	if err != nil {
		return fmt.Errorf("insert exercise %s: %w", ex.ID, err)
	}

	for _, m := range ex.PrimaryMuscles {
		if _, err := q.Exec(
			"INSERT INTO exercise_primary_muscles (exercise_id, muscle) VALUES (?, ?)",
			ex.ID, string(m),
		); err != nil {
			return fmt.Errorf("insert primary muscle for %s: %w", ex.ID, err)
		}
	}
	for _, m := range ex.SecondaryMuscles {
		if _, err := q.Exec(
			"INSERT INTO exercise_secondary_muscles (exercise_id, muscle) VALUES (?, ?)",
			ex.ID, string(m),
		); err != nil {
			return fmt.Errorf("insert secondary muscle for %s: %w", ex.ID, err)
		}
	}
	for i, instruction := range ex.Instructions {
		if _, err := q.Exec(
			"INSERT INTO exercise_instructions (exercise_id, instruction, order_index) VALUES (?, ?, ?)",
			ex.ID, instruction, i,
		); err != nil {
			return fmt.Errorf("insert instruction for %s: %w", ex.ID, err)
		}
	}
	for i, url := range ex.Images {
		if _, err := q.Exec(
			"INSERT INTO exercise_images (exercise_id, url, order_index) VALUES (?, ?, ?)",
			ex.ID, url, i,
		); err != nil {
			return fmt.Errorf("insert image for %s: %w", ex.ID, err)
		}
	}

	return nil
}

// FetchFullExercise retrieves an exercise with all four child collections.
// Returns (nil, nil) when the id does not exist.
func (d *DB) FetchFullExercise(id string) (*models.Exercise, error) {
	row := d.db.QueryRow(`
		SELECT id, name, force, level, mechanic, equipment, category, frequency
		FROM exercises
		WHERE id = ?
	`, id)

	rec, err := scanExerciseRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch exercise %s: %w", id, err)
	}

	ex := &models.Exercise{ExerciseRecord: *rec}

	ex.PrimaryMuscles, err = d.fetchMuscles("exercise_primary_muscles", id)
	if err != nil {
		return nil, err
	}
	ex.SecondaryMuscles, err = d.fetchMuscles("exercise_secondary_muscles", id)
	if err != nil {
		return nil, err
	}
	ex.Instructions, err = d.fetchOrderedText("exercise_instructions", "instruction", id)
	if err != nil {
		return nil, err
	}
	ex.Images, err = d.fetchOrderedText("exercise_images", "url", id)
	if err != nil {
		return nil, err
	}

	return ex, nil
}

// FetchPrimaryMuscles is a lightweight projection that skips instructions
// and images.
func (d *DB) FetchPrimaryMuscles(id string) ([]models.MuscleGroup, error) {
	return d.fetchMuscles("exercise_primary_muscles", id)
}

// FindOrCreateExerciseID resolves an exercise name to a catalog id with a
// case-insensitive match. Unknown names get a minimal catalog row under a
// slug id so history rows referencing them always join. The second return
// reports whether a new catalog entry was created.
func FindOrCreateExerciseID(q Querier, name string) (string, bool, error) {
	var id string
	err := q.QueryRow(
		"SELECT id FROM exercises WHERE LOWER(name) = LOWER(?) LIMIT 1",
		name,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return "", false, fmt.Errorf("look up exercise %q: %w", name, err)
	}

	id = models.SlugID(name)
	if id == "" {
		return "", false, fmt.Errorf("cannot derive id from exercise name %q", name)
	}
	if _, err := q.Exec(
		"INSERT OR IGNORE INTO exercises (id, name) VALUES (?, ?)",
		id, name,
	); err != nil {
		return "", false, fmt.Errorf("create exercise %q: %w", name, err)
	}
	return id, true, nil
}

// UpdateExerciseFrequency sets the usage frequency counter on a catalog row.
func (d *DB) UpdateExerciseFrequency(id string, frequency int) error {
	result, err := d.db.Exec("UPDATE exercises SET frequency = ? WHERE id = ?", frequency, id)
	if err != nil {
		return fmt.Errorf("update exercise frequency: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise frequency: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", id)
	}
	return nil
}

// DeleteExercise removes a catalog entry and all its children (cascade).
func (d *DB) DeleteExercise(id string) error {
	result, err := d.db.Exec("DELETE FROM exercises WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", id)
	}
	return nil
}

// CatalogCount returns the total number of catalog rows, unfiltered.
func (d *DB) CatalogCount() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM exercises").Scan(&count); err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	return count, nil
}

func (d *DB) fetchMuscles(table, exerciseID string) ([]models.MuscleGroup, error) {
	rows, err := d.db.Query(
		"SELECT muscle FROM "+table+" WHERE exercise_id = ? ORDER BY id",
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch muscles for %s: %w", exerciseID, err)
	}
	defer rows.Close()

	var muscles []models.MuscleGroup
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan muscle: %w", err)
		}
		muscles = append(muscles, models.MuscleGroup(m))
	}
	return muscles, rows.Err()
}

func (d *DB) fetchOrderedText(table, column, exerciseID string) ([]string, error) {
	rows, err := d.db.Query(
		"SELECT "+column+" FROM "+table+" WHERE exercise_id = ? ORDER BY order_index",
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for %s: %w", table, exerciseID, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for the record scanners.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExerciseRecord(row rowScanner) (*models.ExerciseRecord, error) {
	var rec models.ExerciseRecord
	var force, mechanic, equipment sql.NullString
	var frequency sql.NullInt64

	err := row.Scan(&rec.ID, &rec.Name, &force, &rec.Level, &mechanic, &equipment, &rec.Category, &frequency)
	if err != nil {
		return nil, err
	}

	if force.Valid {
		f := models.Force(force.String)
		rec.Force = &f
	}
	if mechanic.Valid {
		m := models.Mechanic(mechanic.String)
		rec.Mechanic = &m
	}
	if equipment.Valid {
		e := models.Equipment(equipment.String)
		rec.Equipment = &e
	}
	if frequency.Valid {
		f := int(frequency.Int64)
		rec.Frequency = &f
	}

	return &rec, nil
}
