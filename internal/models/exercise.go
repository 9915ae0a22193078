// ABOUTME: Exercise catalog models and facet enums.
// ABOUTME: ExerciseRecord is the core row; Exercise carries the full child collections.
package models

import "strings"

// Force describes the push/pull/static character of an exercise.
type Force string

const (
	ForcePush   Force = "push"
	ForcePull   Force = "pull"
	ForceStatic Force = "static"
)

// Level describes the difficulty of an exercise.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// Mechanic describes whether an exercise is compound or isolation.
type Mechanic string

const (
	MechanicCompound  Mechanic = "compound"
	MechanicIsolation Mechanic = "isolation"
)

// Equipment describes what an exercise is performed with.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentBodyOnly   Equipment = "body only"
	EquipmentKettlebell Equipment = "kettlebells"
	EquipmentBands      Equipment = "bands"
	EquipmentMedicine   Equipment = "medicine ball"
	EquipmentExercise   Equipment = "exercise ball"
	EquipmentEZCurlBar  Equipment = "e-z curl bar"
	EquipmentFoamRoll   Equipment = "foam roll"
	EquipmentOther      Equipment = "other"
)

// Category describes the training discipline of an exercise.
type Category string

const (
	CategoryStrength      Category = "strength"
	CategoryStretching    Category = "stretching"
	CategoryPlyometrics   Category = "plyometrics"
	CategoryStrongman     Category = "strongman"
	CategoryPowerlifting  Category = "powerlifting"
	CategoryCardio        Category = "cardio"
	CategoryOlympic       Category = "olympic weightlifting"
)

// MuscleGroup identifies a muscle targeted by an exercise.
type MuscleGroup string

const (
	MuscleAbdominals MuscleGroup = "abdominals"
	MuscleAbductors  MuscleGroup = "abductors"
	MuscleAdductors  MuscleGroup = "adductors"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleCalves     MuscleGroup = "calves"
	MuscleChest      MuscleGroup = "chest"
	MuscleForearms   MuscleGroup = "forearms"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleLats       MuscleGroup = "lats"
	MuscleLowerBack  MuscleGroup = "lower back"
	MuscleMiddleBack MuscleGroup = "middle back"
	MuscleNeck       MuscleGroup = "neck"
	MuscleQuadriceps MuscleGroup = "quadriceps"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleTraps      MuscleGroup = "traps"
	MuscleTriceps    MuscleGroup = "triceps"
)

// AllMuscleGroups returns all valid muscle groups.
var AllMuscleGroups = []MuscleGroup{
	MuscleAbdominals, MuscleAbductors, MuscleAdductors, MuscleBiceps,
	MuscleCalves, MuscleChest, MuscleForearms, MuscleGlutes,
	MuscleHamstrings, MuscleLats, MuscleLowerBack, MuscleMiddleBack,
	MuscleNeck, MuscleQuadriceps, MuscleShoulders, MuscleTraps, MuscleTriceps,
}

// IsValidMuscleGroup checks if a string is a valid muscle group.
func IsValidMuscleGroup(s string) bool {
	for _, m := range AllMuscleGroups {
		if string(m) == s {
			return true
		}
	}
	return false
}

// ExerciseRecord is the core catalog row for one exercise.
// ID is a stable external string key (slug), unique across the catalog.
type ExerciseRecord struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Force     *Force     `json:"force,omitempty" yaml:"force,omitempty"`
	Level     Level      `json:"level" yaml:"level"`
	Mechanic  *Mechanic  `json:"mechanic,omitempty" yaml:"mechanic,omitempty"`
	Equipment *Equipment `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Category  Category   `json:"category" yaml:"category"`
	Frequency *int       `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// Exercise is a catalog entry with all child collections attached.
type Exercise struct {
	ExerciseRecord   `yaml:",inline"`
	PrimaryMuscles   []MuscleGroup `json:"primaryMuscles" yaml:"primary_muscles"`
	SecondaryMuscles []MuscleGroup `json:"secondaryMuscles" yaml:"secondary_muscles"`
	Instructions     []string      `json:"instructions" yaml:"instructions"`
	Images           []string      `json:"images" yaml:"images"`
}

// SlugID derives a stable catalog id from an exercise name.
// Used when the importer meets an exercise name with no catalog match.
func SlugID(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
