// ABOUTME: One-time catalog seeding from the bundled exercise JSON file.
// ABOUTME: The whole batch commits atomically and is gated by a settings flag.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/harperreed/trainlog/internal/models"
)

// settingSeedCompleted gates catalog seeding. It is set inside the seed
// transaction, so a failed seed leaves it unset and seeding retries on the
// next launch.
const settingSeedCompleted = "catalog_seed_completed"

// SeedCompleted reports whether the catalog seed has already been imported.
func (d *DB) SeedCompleted() (bool, error) {
	v, err := d.getSetting(settingSeedCompleted)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// ImportSeed reads a JSON array of exercises and inserts them all in one
// transaction. Either every exercise in the source commits or none do.
// When the seed flag is already set this is a no-op returning (0, nil).
func (d *DB) ImportSeed(r io.Reader) (int, error) {
	done, err := d.SeedCompleted()
	if err != nil {
		return 0, err
	}
	if done {
		return 0, nil
	}

	var exercises []models.Exercise
	if err := json.NewDecoder(r).Decode(&exercises); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	err = d.WithTx(func(tx *sql.Tx) error {
		for i := range exercises {
			if err := InsertExercise(tx, &exercises[i]); err != nil {
				return err
			}
		}
		return setSetting(tx, settingSeedCompleted, "true")
	})
	if err != nil {
		return 0, fmt.Errorf("import seed: %w", err)
	}

	return len(exercises), nil
}

// ImportSeedFile seeds the catalog from a JSON file on disk if needed.
func (d *DB) ImportSeedFile(path string) (int, error) {
	done, err := d.SeedCompleted()
	if err != nil {
		return 0, err
	}
	if done {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return d.ImportSeed(f)
}
