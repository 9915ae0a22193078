// ABOUTME: Filtered, paginated catalog queries with deterministic ordering.
// ABOUTME: Facets compose with AND and are pushed into SQL, never applied in process.
package storage

import (
	"fmt"
	"strings"

	"github.com/harperreed/trainlog/internal/models"
)

// ExerciseFilter is an all-optional facet combination. A nil filter or a
// zero-value filter matches the whole catalog.
type ExerciseFilter struct {
	Category  *models.Category
	Muscle    *models.MuscleGroup
	Level     *models.Level
	Equipment *models.Equipment
}

// buildWhere assembles the WHERE clause shared by the count and page
// queries. The muscle facet matches when the muscle appears in either the
// primary or the secondary table; EXISTS keeps each exercise to one row
// even when both tables match.
func (f *ExerciseFilter) buildWhere() (string, []any) {
	if f == nil {
		return "", nil
	}

	var clauses []string
	var args []any

	if f.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, string(*f.Category))
	}
	if f.Level != nil {
		clauses = append(clauses, "level = ?")
		args = append(args, string(*f.Level))
	}
	if f.Equipment != nil {
		clauses = append(clauses, "equipment = ?")
		args = append(args, string(*f.Equipment))
	}
	if f.Muscle != nil {
		clauses = append(clauses, `(
			EXISTS (SELECT 1 FROM exercise_primary_muscles pm WHERE pm.exercise_id = exercises.id AND pm.muscle = ?)
			OR EXISTS (SELECT 1 FROM exercise_secondary_muscles sm WHERE sm.exercise_id = exercises.id AND sm.muscle = ?)
		)`)
		args = append(args, string(*f.Muscle), string(*f.Muscle))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// FetchExerciseRecords returns one page of catalog rows matching the filter,
// ordered by name ascending (id breaks ties) so repeated calls never shift
// rows between pages while the catalog is unchanged. A page below 1 or a
// non-positive page size returns an empty slice rather than an error.
func (d *DB) FetchExerciseRecords(page, pageSize int, f *ExerciseFilter) ([]*models.ExerciseRecord, error) {
	if page < 1 || pageSize < 1 {
		return []*models.ExerciseRecord{}, nil
	}

	where, args := f.buildWhere()
	query := `
		SELECT id, name, force, level, mechanic, equipment, category, frequency
		FROM exercises
	` + where + `
		ORDER BY name ASC, id ASC
		LIMIT ? OFFSET ?
	`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch exercise page: %w", err)
	}
	defer rows.Close()

	records := []*models.ExerciseRecord{}
	for rows.Next() {
		rec, err := scanExerciseRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountExercises returns the number of catalog rows matching the filter,
// using the same predicate builder as FetchExerciseRecords.
func (d *DB) CountExercises(f *ExerciseFilter) (int, error) {
	where, args := f.buildWhere()

	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM exercises"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return count, nil
}
