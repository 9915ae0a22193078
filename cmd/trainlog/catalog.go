// ABOUTME: CLI commands for browsing and seeding the exercise catalog.
// ABOUTME: Supports paginated, facet-filtered listing plus show, count, and seed.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
	"github.com/harperreed/trainlog/internal/storage"
)

var (
	catalogPage      int
	catalogPageSize  int
	catalogCategory  string
	catalogMuscle    string
	catalogLevel     string
	catalogEquipment string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the exercise catalog",
	Long: `Browse and manage the exercise catalog.

Filters compose: --muscle chest --level beginner lists beginner exercises
that hit the chest as a primary or secondary muscle. Listing is paginated
and always ordered by exercise name.`,
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises with optional facet filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := buildFilter()

		records, err := store.FetchExerciseRecords(catalogPage, catalogPageSize, filter)
		if err != nil {
			return fmt.Errorf("fetch exercises: %w", err)
		}
		total, err := store.CountExercises(filter)
		if err != nil {
			return fmt.Errorf("count exercises: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, rec := range records {
			equipment := ""
			if rec.Equipment != nil {
				equipment = string(*rec.Equipment)
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(padRight(rec.ID, 32)),
				padRight(rec.Name, 36),
				padRight(string(rec.Level), 12),
				equipment)
		}
		fmt.Printf("\nPage %d (%d of %d exercises)\n", catalogPage, len(records), total)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show full exercise detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := store.FetchFullExercise(args[0])
		if err != nil {
			return fmt.Errorf("fetch exercise: %w", err)
		}
		if ex == nil {
			return fmt.Errorf("not found: %s", args[0])
		}

		color.New(color.Bold).Println(ex.Name)
		fmt.Printf("  ID:        %s\n", ex.ID)
		fmt.Printf("  Level:     %s\n", ex.Level)
		fmt.Printf("  Category:  %s\n", ex.Category)
		if ex.Force != nil {
			fmt.Printf("  Force:     %s\n", *ex.Force)
		}
		if ex.Mechanic != nil {
			fmt.Printf("  Mechanic:  %s\n", *ex.Mechanic)
		}
		if ex.Equipment != nil {
			fmt.Printf("  Equipment: %s\n", *ex.Equipment)
		}
		if len(ex.PrimaryMuscles) > 0 {
			fmt.Printf("  Primary:   %s\n", joinMuscles(ex.PrimaryMuscles))
		}
		if len(ex.SecondaryMuscles) > 0 {
			fmt.Printf("  Secondary: %s\n", joinMuscles(ex.SecondaryMuscles))
		}
		if len(ex.Instructions) > 0 {
			fmt.Println("  Instructions:")
			for i, instruction := range ex.Instructions {
				fmt.Printf("    %d. %s\n", i+1, instruction)
			}
		}
		return nil
	},
}

var catalogCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count exercises matching the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := store.CountExercises(buildFilter())
		if err != nil {
			return fmt.Errorf("count exercises: %w", err)
		}
		fmt.Println(total)
		return nil
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Import the exercise catalog seed file",
	Long: `Import the bundled exercise catalog from a JSON seed file.

The whole file commits atomically and runs at most once; re-running is a
no-op after the first successful import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := store.ImportSeedFile(args[0])
		if err != nil {
			return fmt.Errorf("import seed: %w", err)
		}
		if count == 0 {
			fmt.Println("Catalog already seeded.")
			return nil
		}
		color.Green("✓ Seeded %d exercises", count)
		return nil
	},
}

// buildFilter assembles an ExerciseFilter from the list/count flags.
func buildFilter() *storage.ExerciseFilter {
	filter := &storage.ExerciseFilter{}
	if catalogCategory != "" {
		c := models.Category(catalogCategory)
		filter.Category = &c
	}
	if catalogMuscle != "" {
		m := models.MuscleGroup(catalogMuscle)
		filter.Muscle = &m
	}
	if catalogLevel != "" {
		l := models.Level(catalogLevel)
		filter.Level = &l
	}
	if catalogEquipment != "" {
		e := models.Equipment(catalogEquipment)
		filter.Equipment = &e
	}
	return filter
}

func joinMuscles(muscles []models.MuscleGroup) string {
	s := ""
	for i, m := range muscles {
		if i > 0 {
			s += ", "
		}
		s += string(m)
	}
	return s
}

func init() {
	for _, cmd := range []*cobra.Command{catalogListCmd, catalogCountCmd} {
		cmd.Flags().StringVar(&catalogCategory, "category", "", "filter by category")
		cmd.Flags().StringVar(&catalogMuscle, "muscle", "", "filter by muscle group (primary or secondary)")
		cmd.Flags().StringVar(&catalogLevel, "level", "", "filter by level")
		cmd.Flags().StringVar(&catalogEquipment, "equipment", "", "filter by equipment")
	}
	catalogListCmd.Flags().IntVar(&catalogPage, "page", 1, "page number (1-based)")
	catalogListCmd.Flags().IntVar(&catalogPageSize, "page-size", 20, "exercises per page")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogCountCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
}
