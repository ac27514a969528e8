package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/audit"
	"github.com/farsight-cli/farsight/internal/decision"
)

var (
	metricWeight      float64
	metricDescription string
	metricUnit        string
	metricTarget      float64
)

var metricCmd = &cobra.Command{
	Use:   "metric ID NAME",
	Short: "Add a weighted outcome metric to a decision",
	Long: `Add a metric: a named dimension of success every option will be
forecast against. Weight expresses relative importance; a weight of zero
keeps the metric on the record without letting it move the ranking.

Metrics in different units are aggregated as-is under their weights;
nothing rescales dollars against a 0-10 score. Pick weights accordingly.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		d, err := st.Get(args[0])
		if err != nil {
			return err
		}

		m := decision.Metric{
			Name:        args[1],
			Description: metricDescription,
			Unit:        metricUnit,
			Weight:      metricWeight,
		}
		if cmd.Flags().Changed("target") {
			target := metricTarget
			m.Target = &target
		}
		if err := d.AddMetric(m); err != nil {
			return err
		}

		if err := st.Update(d); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		auditLog(cfg, audit.EventEdit, map[string]string{"id": d.ID, "metric": m.Name})

		fmt.Printf("Added metric %s (weight %g) to [%s]\n", m.Name, m.Weight, d.ID)
		return nil
	},
}

func init() {
	metricCmd.Flags().Float64Var(&metricWeight, "weight", 1, "Relative importance (0 excludes from aggregation)")
	metricCmd.Flags().StringVar(&metricDescription, "description", "", "What this metric measures")
	metricCmd.Flags().StringVar(&metricUnit, "unit", "", "Display unit (e.g. $k, /10)")
	metricCmd.Flags().Float64Var(&metricTarget, "target", 0, "Aspirational level, display-only")
	rootCmd.AddCommand(metricCmd)
}
