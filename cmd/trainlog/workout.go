// ABOUTME: CLI commands for browsing workout history.
// ABOUTME: Supports list, show, and delete (cascade) subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var workoutLimit int

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Browse workout history",
	Long: `Browse workouts recorded by hand or imported from vendor exports.

Deleting a workout removes all of its exercises and sets.`,
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := store.ListWorkouts(workoutLimit)
		if err != nil {
			return fmt.Errorf("list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(w.ID.String()[:8]),
				faint.Sprint(w.Date.Format("2006-01-02 15:04")),
				w.Name)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its exercises and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workout id: %w", err)
		}

		w, err := store.GetWorkoutDetail(id)
		if err != nil {
			return fmt.Errorf("get workout: %w", err)
		}

		color.New(color.Bold).Println(w.Name)
		fmt.Printf("  Date: %s\n", w.Date.Format("2006-01-02 15:04"))
		if w.EndTime != nil {
			fmt.Printf("  End:  %s\n", w.EndTime.Format("2006-01-02 15:04"))
		}
		if w.Notes != nil {
			fmt.Printf("  Notes: %s\n", *w.Notes)
		}

		for _, we := range w.Exercises {
			fmt.Printf("\n  %d. %s\n", we.Position+1, we.ExerciseID)
			for _, s := range we.Sets {
				rpe := ""
				if s.RPE != nil {
					rpe = fmt.Sprintf(" @%.1f", *s.RPE)
				}
				fmt.Printf("     set %d: %d × %.1f (%s)%s\n",
					s.Position+1, s.Reps, s.Weight, s.Type, rpe)
			}
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout and all its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workout id: %w", err)
		}
		if err := store.DeleteWorkout(id); err != nil {
			return fmt.Errorf("delete workout: %w", err)
		}
		color.Green("✓ Deleted workout %s", args[0])
		return nil
	},
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

func init() {
	workoutListCmd.Flags().IntVar(&workoutLimit, "limit", 20, "maximum workouts to list (0 for all)")

	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
}
