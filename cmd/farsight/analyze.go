package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/render"
)

var (
	analyzeFactors string
	analyzeZero    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze PREFIX",
	Short: "Expected values and weight sensitivity",
	Long: `Rank a decision's options by expected value, then re-rank them under
a grid of metric-weight perturbations to see how robust the ranking is
to disagreement about relative importance.

The grid scales each metric's weight by each factor in turn; --zero also
drops each metric entirely. A flip warning means the winner depends on
weights you might reasonably argue about.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		d, err := st.Get(args[0])
		if err != nil {
			return err
		}

		factors := cfg.SensitivityFactors
		if analyzeFactors != "" {
			factors, err = parseFactors(analyzeFactors)
			if err != nil {
				return err
			}
		}

		rows, err := d.SensitivityAnalysis(factors, analyzeZero)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(rows)
		}
		return render.Sensitivity(os.Stdout, rows)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFactors, "factors", "", "Comma-separated weight factors (default from config: 0.1,0.5,2,10)")
	analyzeCmd.Flags().BoolVar(&analyzeZero, "zero", false, "Also drop each metric's weight to zero in turn")
	rootCmd.AddCommand(analyzeCmd)
}
