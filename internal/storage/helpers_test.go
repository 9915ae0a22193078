// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB and catalog fixtures.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/trainlog/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// insertTestExercise writes one exercise directly, outside the seed path.
func insertTestExercise(t *testing.T, db *DB, ex *models.Exercise) {
	t.Helper()
	if err := InsertExercise(db.db, ex); err != nil {
		t.Fatalf("failed to insert exercise %s: %v", ex.ID, err)
	}
}

// testExercise builds a minimal catalog entry for filter tests.
func testExercise(id, name string, category models.Category, level models.Level, primary, secondary []models.MuscleGroup) *models.Exercise {
	return &models.Exercise{
		ExerciseRecord: models.ExerciseRecord{
			ID:       id,
			Name:     name,
			Level:    level,
			Category: category,
		},
		PrimaryMuscles:   primary,
		SecondaryMuscles: secondary,
	}
}
