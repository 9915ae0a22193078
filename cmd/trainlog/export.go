// ABOUTME: CLI command for exporting workout history.
// ABOUTME: Supports JSON and YAML output to stdout or a file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export workout history",
	Long: `Export the full workout history for backup.

Examples:
  trainlog export --format json > backup.json
  trainlog export --format yaml -o backup.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch exportFormat {
		case "json":
			data, err = store.ExportJSON()
		case "yaml":
			data, err = store.ExportYAML()
		default:
			return fmt.Errorf("unknown format: %q (want json or yaml)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}
