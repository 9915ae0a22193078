// ABOUTME: Tests for the Hevy CSV decoder and its within-file set dedup.
// ABOUTME: Re-importing a Hevy file duplicates workouts; only set indexes dedup.
package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/trainlog/internal/models"
)

const hevyHeader = "title,start_time,end_time,description,exercise_title,exercise_notes,set_index,set_type,weight_lbs,reps,rpe\n"

func TestHevyImport(t *testing.T) {
	store := setupStore(t)

	csv := hevyHeader +
		"Leg Day,\"15 Mar 2024, 18:30\",\"15 Mar 2024, 19:45\",Felt strong,Squat,Pause at bottom,0,warmup,95,10,\n" +
		"Leg Day,\"15 Mar 2024, 18:30\",\"15 Mar 2024, 19:45\",Felt strong,Squat,Pause at bottom,1,normal,185,8,8.5\n" +
		"Leg Day,\"15 Mar 2024, 18:30\",\"15 Mar 2024, 19:45\",Felt strong,Leg Press,,0,dropset,270,12,\n"
	summary, err := New(store).Import(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, FormatHevy, summary.Format)
	assert.Equal(t, 1, summary.Workouts)
	assert.Equal(t, 2, summary.Exercises)
	assert.Equal(t, 3, summary.Sets)
	assert.Empty(t, summary.Skipped)

	workouts, err := store.ListWorkouts(0)
	require.NoError(t, err)
	require.Len(t, workouts, 1)

	detail, err := store.GetWorkoutDetail(workouts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", detail.Name)
	assert.Equal(t, time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC), detail.Date)
	require.NotNil(t, detail.EndTime)
	assert.Equal(t, time.Date(2024, 3, 15, 19, 45, 0, 0, time.UTC), *detail.EndTime)
	assert.True(t, detail.IsFinished)
	require.NotNil(t, detail.Notes)
	assert.Equal(t, "Felt strong", *detail.Notes)

	require.Len(t, detail.Exercises, 2)
	squat := detail.Exercises[0]
	assert.Equal(t, "squat", squat.ExerciseID)
	require.NotNil(t, squat.Notes)
	assert.Equal(t, "Pause at bottom", *squat.Notes)

	require.Len(t, squat.Sets, 2)
	assert.Equal(t, models.SetWarmup, squat.Sets[0].Type)
	assert.Equal(t, models.SetWorking, squat.Sets[1].Type)
	assert.Equal(t, 185.0, squat.Sets[1].Weight)
	require.NotNil(t, squat.Sets[1].RPE)
	assert.Equal(t, 8.5, *squat.Sets[1].RPE)
	assert.True(t, squat.Sets[0].IsDone)

	legPress := detail.Exercises[1]
	assert.Equal(t, 1, legPress.Position)
	require.Len(t, legPress.Sets, 1)
	assert.Equal(t, models.SetDrop, legPress.Sets[0].Type)
}

func TestHevyDuplicateSetIndexWithinFile(t *testing.T) {
	store := setupStore(t)

	// The same set row appears twice; the order index is already occupied
	// so the second copy is dropped.
	csv := hevyHeader +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,0,normal,185,8,\n" +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,0,normal,185,8,\n"
	summary, err := New(store).Import(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Workouts)
	assert.Equal(t, 1, summary.Sets)
	assert.Equal(t, 1, summary.DuplicateSets)

	workouts, err := store.ListWorkouts(0)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	detail, err := store.GetWorkoutDetail(workouts[0].ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	assert.Len(t, detail.Exercises[0].Sets, 1)
}

func TestHevyReimportDuplicatesWorkout(t *testing.T) {
	store := setupStore(t)

	csv := hevyHeader +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,0,normal,185,8,\n"

	_, err := New(store).Import(strings.NewReader(csv))
	require.NoError(t, err)
	summary, err := New(store).Import(strings.NewReader(csv))
	require.NoError(t, err)

	// No store-level match is attempted for this format, so a second run
	// creates a second workout row.
	assert.Equal(t, 1, summary.Workouts)
	assert.Equal(t, 0, summary.MergedWorkouts)

	count, err := store.CountWorkouts()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHevyBadRowsSkipped(t *testing.T) {
	store := setupStore(t)

	csv := hevyHeader +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,0,normal,185,8,\n" +
		"Leg Day,not a date,,,Squat,,1,normal,185,8,\n" +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,two,normal,185,8,\n" +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,2,normal,heavy,8,\n"
	summary, err := New(store).Import(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, summary.Skipped, 3)
	assert.Contains(t, summary.Skipped[0].Reason, "bad start_time")
	assert.Contains(t, summary.Skipped[1].Reason, "bad set_index")
	assert.Contains(t, summary.Skipped[2].Reason, "bad weight_lbs")
	assert.Equal(t, 1, summary.Sets)
}

func TestHevyUnknownSetTypeFallsBackToWorking(t *testing.T) {
	store := setupStore(t)

	csv := hevyHeader +
		"Leg Day,\"15 Mar 2024, 18:30\",,,Squat,,0,superset,185,8,\n"
	_, err := New(store).Import(strings.NewReader(csv))
	require.NoError(t, err)

	workouts, err := store.ListWorkouts(0)
	require.NoError(t, err)
	detail, err := store.GetWorkoutDetail(workouts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.SetWorking, detail.Exercises[0].Sets[0].Type)
}
