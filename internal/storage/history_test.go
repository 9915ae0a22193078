// ABOUTME: Tests for the workout history repository.
// ABOUTME: Verifies cascade delete, renumbering, and name+date lookup.
package storage

import (
	"testing"
	"time"

	"github.com/harperreed/trainlog/internal/models"
)

func createTestWorkout(t *testing.T, db *DB, name string, date time.Time, setCount int) *models.Workout {
	t.Helper()
	w := models.NewWorkout(name, date)
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	we := models.NewWorkoutExercise(w.ID, "bench-press", 0)
	if err := db.AddWorkoutExercise(we); err != nil {
		t.Fatalf("AddWorkoutExercise failed: %v", err)
	}
	for i := 0; i < setCount; i++ {
		s := models.NewExerciseSet(we.ID, 10, 100, models.SetWorking, i)
		if err := db.AddSet(s); err != nil {
			t.Fatalf("AddSet failed: %v", err)
		}
	}
	return w
}

func TestCreateAndGetWorkoutDetail(t *testing.T) {
	db := setupTestDB(t)
	date := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	w := createTestWorkout(t, db, "Push Day", date, 3)

	got, err := db.GetWorkoutDetail(w.ID)
	if err != nil {
		t.Fatalf("GetWorkoutDetail failed: %v", err)
	}
	if got.Name != "Push Day" {
		t.Errorf("Name = %q, want Push Day", got.Name)
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", got.Date, date)
	}
	if len(got.Exercises) != 1 {
		t.Fatalf("got %d exercises, want 1", len(got.Exercises))
	}
	if len(got.Exercises[0].Sets) != 3 {
		t.Errorf("got %d sets, want 3", len(got.Exercises[0].Sets))
	}
	for i, s := range got.Exercises[0].Sets {
		if s.Position != i {
			t.Errorf("set %d has position %d", i, s.Position)
		}
	}
}

func TestDeleteWorkoutCascades(t *testing.T) {
	db := setupTestDB(t)
	w := createTestWorkout(t, db, "Leg Day", time.Now().UTC().Truncate(time.Second), 4)

	if err := db.DeleteWorkout(w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	var count int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM workout_exercises").Scan(&count); err != nil {
		t.Fatalf("count workout_exercises: %v", err)
	}
	if count != 0 {
		t.Errorf("workout_exercises count = %d after cascade delete, want 0", count)
	}
	if err := db.db.QueryRow("SELECT COUNT(*) FROM exercise_sets").Scan(&count); err != nil {
		t.Fatalf("count exercise_sets: %v", err)
	}
	if count != 0 {
		t.Errorf("exercise_sets count = %d after cascade delete, want 0", count)
	}
}

func TestDeleteWorkoutMissing(t *testing.T) {
	db := setupTestDB(t)
	w := models.NewWorkout("Ghost", time.Now())
	if err := db.DeleteWorkout(w.ID); err == nil {
		t.Error("expected error deleting missing workout")
	}
}

func TestListWorkoutsMostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	old := createTestWorkout(t, db, "Old", base, 1)
	recent := createTestWorkout(t, db, "Recent", base.AddDate(0, 1, 0), 1)
	_ = old

	workouts, err := db.ListWorkouts(0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("got %d workouts, want 2", len(workouts))
	}
	if workouts[0].ID != recent.ID {
		t.Errorf("expected most recent first, got %q", workouts[0].Name)
	}

	limited, err := db.ListWorkouts(1)
	if err != nil {
		t.Fatalf("ListWorkouts with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d workouts", len(limited))
	}
}

func TestFindWorkoutByNameAndDate(t *testing.T) {
	db := setupTestDB(t)
	date := time.Date(2024, 2, 10, 7, 0, 0, 0, time.UTC)
	w := createTestWorkout(t, db, "Morning Pull", date, 1)

	got, err := FindWorkoutByNameAndDate(db.db, "Morning Pull", date)
	if err != nil {
		t.Fatalf("FindWorkoutByNameAndDate failed: %v", err)
	}
	if got == nil || got.ID != w.ID {
		t.Fatalf("got %+v, want workout %s", got, w.ID)
	}

	// Same name, different date: no match
	got, err = FindWorkoutByNameAndDate(db.db, "Morning Pull", date.Add(time.Hour))
	if err != nil {
		t.Fatalf("FindWorkoutByNameAndDate failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected no match, got %+v", got)
	}
}

func TestDeleteSetRenumbersSiblings(t *testing.T) {
	db := setupTestDB(t)
	w := createTestWorkout(t, db, "Volume Day", time.Now().UTC().Truncate(time.Second), 3)

	detail, err := db.GetWorkoutDetail(w.ID)
	if err != nil {
		t.Fatalf("GetWorkoutDetail failed: %v", err)
	}
	sets := detail.Exercises[0].Sets

	// Remove the middle set; the remaining two must close the gap.
	if err := db.DeleteSet(sets[1].ID); err != nil {
		t.Fatalf("DeleteSet failed: %v", err)
	}

	remaining, err := LoadSets(db.db, detail.Exercises[0].ID)
	if err != nil {
		t.Fatalf("LoadSets failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("got %d sets, want 2", len(remaining))
	}
	for i, s := range remaining {
		if s.Position != i {
			t.Errorf("set %d has position %d after renumber", i, s.Position)
		}
	}
}

func TestUpdateWorkout(t *testing.T) {
	db := setupTestDB(t)
	date := time.Date(2024, 5, 5, 17, 0, 0, 0, time.UTC)
	w := createTestWorkout(t, db, "PM Session", date, 1)

	end := date.Add(time.Hour)
	w.EndTime = &end
	w.IsFinished = true
	if err := UpdateWorkout(db.db, w); err != nil {
		t.Fatalf("UpdateWorkout failed: %v", err)
	}

	got, err := db.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.EndTime == nil || !got.EndTime.Equal(end) {
		t.Errorf("EndTime = %v, want %v", got.EndTime, end)
	}
	if !got.IsFinished {
		t.Error("IsFinished not persisted")
	}
}

func TestUpdateSet(t *testing.T) {
	db := setupTestDB(t)
	w := createTestWorkout(t, db, "Session", time.Now().UTC().Truncate(time.Second), 1)

	detail, _ := db.GetWorkoutDetail(w.ID)
	s := detail.Exercises[0].Sets[0]
	s.Reps = 12
	s.Weight = 92.5
	s.IsDone = true
	if err := db.UpdateSet(&s); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}

	reloaded, _ := db.GetWorkoutDetail(w.ID)
	got := reloaded.Exercises[0].Sets[0]
	if got.Reps != 12 || got.Weight != 92.5 || !got.IsDone {
		t.Errorf("set not updated: %+v", got)
	}
}
