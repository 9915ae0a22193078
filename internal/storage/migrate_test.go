// ABOUTME: Tests for the migration runner and ledger.
// ABOUTME: Verifies idempotent application and table creation.
package storage

import (
	"path/filepath"
	"testing"
)

func TestMigrationsApplyOnOpen(t *testing.T) {
	db := setupTestDB(t)

	applied, err := db.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations failed: %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("expected %d applied migrations, got %d", len(migrations), len(applied))
	}
	if applied[0] != "initial-schema" {
		t.Errorf("first migration = %q, want initial-schema", applied[0])
	}
}

func TestMigrationsNotReapplied(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Reopening must not re-run migrations or grow the ledger.
	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	defer db.Close()

	applied, err := db.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations failed: %v", err)
	}
	if len(applied) != len(migrations) {
		t.Errorf("ledger grew on reopen: %d entries, want %d", len(applied), len(migrations))
	}
}

func TestInitialSchemaTables(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{
		"exercises", "exercise_primary_muscles", "exercise_secondary_muscles",
		"exercise_instructions", "exercise_images",
		"workouts", "workout_exercises", "exercise_sets", "settings",
	}
	for _, table := range tables {
		var name string
		err := db.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
