// ABOUTME: Ordered, named schema migrations with an applied-migrations ledger.
// ABOUTME: Each migration runs in its own transaction; changes are additive only.
package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// migration is one named schema change. Migrations are applied in slice
// order, each inside a transaction together with its ledger row, and never
// re-applied once their name appears in schema_migrations.
type migration struct {
	name string
	up   func(tx *sql.Tx) error
}

var migrations = []migration{
	{
		name: "initial-schema",
		up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS exercises (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					force TEXT,
					level TEXT NOT NULL DEFAULT '',
					mechanic TEXT,
					equipment TEXT,
					category TEXT NOT NULL DEFAULT '',
					frequency INTEGER
				)`,
				`CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(name)`,

				`CREATE TABLE IF NOT EXISTS exercise_primary_muscles (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
					muscle TEXT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_primary_muscles_exercise ON exercise_primary_muscles(exercise_id)`,

				`CREATE TABLE IF NOT EXISTS exercise_secondary_muscles (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
					muscle TEXT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_secondary_muscles_exercise ON exercise_secondary_muscles(exercise_id)`,

				`CREATE TABLE IF NOT EXISTS exercise_instructions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
					instruction TEXT NOT NULL,
					order_index INTEGER NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_instructions_exercise_order ON exercise_instructions(exercise_id, order_index)`,

				`CREATE TABLE IF NOT EXISTS exercise_images (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
					url TEXT NOT NULL,
					order_index INTEGER NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_images_exercise_order ON exercise_images(exercise_id, order_index)`,

				`CREATE TABLE IF NOT EXISTS workouts (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					date DATETIME NOT NULL,
					end_time DATETIME,
					is_finished BOOLEAN NOT NULL DEFAULT 0,
					notes TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,

				`CREATE TABLE IF NOT EXISTS workout_exercises (
					id TEXT PRIMARY KEY,
					workout_id TEXT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
					exercise_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					notes TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout_position ON workout_exercises(workout_id, position)`,

				`CREATE TABLE IF NOT EXISTS exercise_sets (
					id TEXT PRIMARY KEY,
					workout_exercise_id TEXT NOT NULL REFERENCES workout_exercises(id) ON DELETE CASCADE,
					reps INTEGER NOT NULL,
					weight REAL NOT NULL,
					set_type TEXT NOT NULL,
					rpe REAL,
					notes TEXT,
					position INTEGER NOT NULL,
					is_done BOOLEAN NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX IF NOT EXISTS idx_sets_workout_exercise_position ON exercise_sets(workout_exercise_id, position)`,

				`CREATE TABLE IF NOT EXISTS settings (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL
				)`,
			}
			for _, stmt := range stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("execute statement: %w", err)
				}
			}
			return nil
		},
	},
}

// migrate applies all pending migrations in order. New migrations must only
// add tables, columns, or indexes so data written by older schema versions
// stays readable.
func (d *DB) migrate() error {
	if _, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create migrations ledger: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := d.db.Query("SELECT name FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("read migrations ledger: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan migration name: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read migrations ledger: %w", err)
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		err := d.WithTx(func(tx *sql.Tx) error {
			if err := m.up(tx); err != nil {
				return err
			}
			_, err := tx.Exec(
				"INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)",
				m.name, time.Now().UTC().Format(time.RFC3339),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
	}

	return nil
}

// AppliedMigrations returns the names recorded in the migrations ledger.
func (d *DB) AppliedMigrations() ([]string, error) {
	rows, err := d.db.Query("SELECT name FROM schema_migrations ORDER BY applied_at, name")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan migration name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
