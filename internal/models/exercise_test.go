// ABOUTME: Tests for exercise catalog models and SlugID.
// ABOUTME: Verifies enum validation and slug derivation edge cases.
package models

import "testing"

func TestSlugID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Bench Press", "bench-press"},
		{"  Squat  ", "squat"},
		{"Lat Pulldown (Cable)", "lat-pulldown-cable"},
		{"21's", "21-s"},
		{"Romanian Deadlift", "romanian-deadlift"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SlugID(tt.name); got != tt.want {
			t.Errorf("SlugID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSlugIDStable(t *testing.T) {
	a := SlugID("Overhead Press")
	b := SlugID("overhead press")
	if a != b {
		t.Errorf("SlugID not case-stable: %q vs %q", a, b)
	}
}

func TestIsValidMuscleGroup(t *testing.T) {
	if !IsValidMuscleGroup("chest") {
		t.Error("chest should be a valid muscle group")
	}
	if IsValidMuscleGroup("wings") {
		t.Error("wings should not be a valid muscle group")
	}
}
