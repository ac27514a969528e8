package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/calibration"
	"github.com/farsight-cli/farsight/internal/render"
)

var calibrationTolerance float64

var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "How well-calibrated your forecasts are",
	Long: `Score every recorded forecast against the outcome that was observed
for it: interval coverage per stated confidence level, mean absolute and
relative point-estimate error, and a Brier score for probability-shaped
forecasts.

A journal with nothing scored yet reports that plainly; it is not an
error to be new at this.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		all, err := st.List()
		if err != nil {
			return err
		}
		warnStoreIssues(st)

		tolerance := cfg.ConfidenceTolerance
		if cmd.Flags().Changed("tolerance") {
			tolerance = calibrationTolerance
		}
		report := calibration.New(tolerance).Report(all)

		if jsonOutput {
			return printJSON(report)
		}
		return render.Calibration(os.Stdout, report)
	},
}

func init() {
	calibrationCmd.Flags().Float64Var(&calibrationTolerance, "tolerance", 0.05, "Confidence bucket tolerance")
	rootCmd.AddCommand(calibrationCmd)
}
