// ABOUTME: Tests for workout history export and restore.
// ABOUTME: Verifies JSON round-trip and YAML shape.
package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	date := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	createTestWorkout(t, src, "Backup Me", date, 2)

	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst, err := Open(filepath.Join(t.TempDir(), "restore.db"))
	if err != nil {
		t.Fatalf("open destination failed: %v", err)
	}
	defer dst.Close()

	if err := dst.ImportJSON(data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	workouts, err := dst.ListWorkouts(0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 || workouts[0].Name != "Backup Me" {
		t.Fatalf("restored workouts = %+v, want 1 named Backup Me", workouts)
	}

	detail, err := dst.GetWorkoutDetail(workouts[0].ID)
	if err != nil {
		t.Fatalf("GetWorkoutDetail failed: %v", err)
	}
	if len(detail.Exercises) != 1 || len(detail.Exercises[0].Sets) != 2 {
		t.Errorf("restored detail wrong: %+v", detail.Exercises)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	createTestWorkout(t, db, "Yaml Day", time.Date(2024, 4, 3, 8, 0, 0, 0, time.UTC), 1)

	data, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Yaml Day") {
		t.Errorf("YAML missing workout name:\n%s", out)
	}
	if !strings.Contains(out, "tool: trainlog") {
		t.Errorf("YAML missing tool marker:\n%s", out)
	}
}
