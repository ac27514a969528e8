package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/config"
	"github.com/farsight-cli/farsight/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Long: `Show every configuration key, its resolved value, and where that
value came from.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (FARSIGHT_*)
  3. Project config (.farsight.yaml, or $FARSIGHT_CONFIG)
  4. Home config (~/.farsight/config.yaml)
  5. Defaults

Environment variables:
  FARSIGHT_CONFIG    - Explicit config file path
  FARSIGHT_STORE     - Decision store path
  FARSIGHT_AUDIT_DB  - Audit log path
  FARSIGHT_EDITOR    - Editor for farsight edit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved := config.Resolve(storePath)

		if jsonOutput {
			return printJSON(resolved)
		}

		table := render.NewTable(os.Stdout, "KEY", "VALUE", "SOURCE")
		table.AddRow("store", fmt.Sprint(resolved.Store.Value), string(resolved.Store.Source))
		table.AddRow("audit_db", fmt.Sprint(resolved.AuditDB.Value), string(resolved.AuditDB.Source))
		table.AddRow("editor", fmt.Sprint(resolved.Editor.Value), string(resolved.Editor.Source))
		table.AddRow("sensitivity_factors", fmt.Sprint(resolved.SensitivityFactors.Value), string(resolved.SensitivityFactors.Source))
		table.AddRow("confidence_tolerance", fmt.Sprint(resolved.ConfidenceTolerance.Value), string(resolved.ConfidenceTolerance.Source))
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
