// ABOUTME: Repository interface for catalog and workout history storage.
// ABOUTME: Defines the contract consumed by the CLI and the log importer.
package storage

import (
	"io"

	"github.com/google/uuid"
	"github.com/harperreed/trainlog/internal/models"
)

// Repository defines the storage interface for exercise and workout data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Catalog operations
	FetchExerciseRecords(page, pageSize int, f *ExerciseFilter) ([]*models.ExerciseRecord, error)
	CountExercises(f *ExerciseFilter) (int, error)
	FetchFullExercise(id string) (*models.Exercise, error)
	FetchPrimaryMuscles(id string) ([]models.MuscleGroup, error)
	ImportSeed(r io.Reader) (int, error)
	ImportSeedFile(path string) (int, error)
	SeedCompleted() (bool, error)
	CatalogCount() (int, error)
	UpdateExerciseFrequency(id string, frequency int) error
	DeleteExercise(id string) error

	// Workout history operations
	CreateWorkout(w *models.Workout) error
	GetWorkout(id uuid.UUID) (*models.Workout, error)
	GetWorkoutDetail(id uuid.UUID) (*models.Workout, error)
	ListWorkouts(limit int) ([]*models.Workout, error)
	DeleteWorkout(id uuid.UUID) error
	CountWorkouts() (int, error)

	// Set operations
	AddWorkoutExercise(we *models.WorkoutExercise) error
	AddSet(s *models.ExerciseSet) error
	UpdateSet(s *models.ExerciseSet) error
	DeleteSet(id uuid.UUID) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
