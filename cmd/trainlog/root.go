// ABOUTME: Root Cobra command for trainlog CLI.
// ABOUTME: Handles store lifecycle via PersistentPre/PostRunE and seeds the catalog.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/config"
	"github.com/harperreed/trainlog/internal/storage"
)

var (
	cfg   *config.Config
	store *storage.DB

	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "trainlog",
	Short: "Local exercise catalog and workout history store",
	Long: `Trainlog keeps an exercise catalog and your workout history in a
local SQLite database.

CATALOG:

  $ trainlog catalog seed exercises.json      # One-time catalog import
  $ trainlog catalog list --muscle chest      # Browse with facet filters
  $ trainlog catalog show bench-press         # Full exercise detail

WORKOUTS:

  $ trainlog workout list                     # Recent workouts
  $ trainlog workout show <id>                # Exercises and sets
  $ trainlog workout delete <id>              # Removes all child rows too

IMPORT:

  $ trainlog import hevy_export.csv           # Hevy or Strong CSV export

  The format is detected from the header row. Re-importing the same file
  does not duplicate sets; Strong files also merge into existing workouts
  with the same name and date.

DATA STORAGE:

  Data lives in a SQLite file under $XDG_DATA_HOME/trainlog (override with
  data_dir in $XDG_CONFIG_HOME/trainlog/config.yaml or --data-dir).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		// First launch seeds the catalog when a seed file is configured.
		if seedFile := cfg.GetSeedFile(); seedFile != "" {
			if _, err := store.ImportSeedFile(seedFile); err != nil {
				_ = store.Close()
				return fmt.Errorf("seed catalog: %w", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/trainlog)")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(workoutCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
