// ABOUTME: CLI command driving the CSV log import state machine.
// ABOUTME: Prints a merge summary including per-row skips.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a Hevy or Strong CSV export",
	Long: `Import a workout log exported from Hevy or Strong.

The vendor format is detected from the CSV header. All writes for one file
happen in a single transaction: a failed import leaves the store untouched.
Re-importing a file does not duplicate sets.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := importer.New(store).ImportFile(args[0])
		if errors.Is(err, importer.ErrUnknownFormat) {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %s export", summary.Format)
		fmt.Printf("  Workouts: %d new", summary.Workouts)
		if summary.MergedWorkouts > 0 {
			fmt.Printf(", %d merged", summary.MergedWorkouts)
		}
		fmt.Printf("\n  Exercises: %d\n  Sets: %d\n", summary.Exercises, summary.Sets)
		if summary.DuplicateSets > 0 {
			fmt.Printf("  Duplicate sets skipped: %d\n", summary.DuplicateSets)
		}
		if len(summary.NewCatalogEntries) > 0 {
			fmt.Printf("  New catalog entries: %d\n", len(summary.NewCatalogEntries))
		}
		for _, skip := range summary.Skipped {
			color.Yellow("⚠ line %d skipped: %s", skip.Line, skip.Reason)
		}
		return nil
	},
}
