package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/audit"
	"github.com/farsight-cli/farsight/internal/decision"
	"github.com/farsight-cli/farsight/internal/parser"
)

var (
	optionDescription string
	optionMetric      string
	optionPoint       float64
	optionLow         float64
	optionHigh        float64
	optionInterval    string
	optionConfidence  string
	optionReasoning   string
	optionAssumptions []string
	optionBaseRate    float64
	optionBaseSource  string
	optionAdjustment  string
	optionComponents  []string
)

var optionCmd = &cobra.Command{
	Use:   "option ID NAME",
	Short: "Add an option or attach a forecast to it",
	Long: `Add a competing option to a decision. With --metric and --point the
same invocation attaches a forecast; run it once per metric, re-running
replaces the earlier forecast for that metric.

  farsight option 3f2a Startup --description "Early stage" \
      --metric Salary --point 180 --interval 150-200 --confidence 80% \
      --assumption "series B closes" \
      --component base=150 --component equity=30`,
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

		name := args[1]
		if _, exists := d.OptionByName(name); !exists {
			o := decision.Option{Name: name, Description: optionDescription}
			if err := d.AddOption(o); err != nil {
				return err
			}
			VerbosePrintf("Added option %s\n", name)
		} else if optionDescription != "" {
			o, _ := d.OptionByName(name)
			o.Description = optionDescription
		}

		if optionMetric != "" {
			if !cmd.Flags().Changed("point") {
				return fmt.Errorf("--metric requires --point")
			}
			f, err := buildForecast(cmd)
			if err != nil {
				return err
			}
			if err := d.SetForecast(name, optionMetric, f); err != nil {
				return err
			}
		}

		if err := st.Update(d); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		auditLog(cfg, audit.EventEdit, map[string]string{"id": d.ID, "option": name})

		if optionMetric != "" {
			fmt.Printf("Forecast for %s on %s recorded in [%s]\n", name, optionMetric, d.ID)
		} else {
			fmt.Printf("Added option %s to [%s]\n", name, d.ID)
		}
		return nil
	},
}

// buildForecast assembles a forecast from the option command's flags. The
// interval comes from --interval ("150-200", "between 150 and 200") or the
// --low/--high pair; with neither, it collapses onto the point estimate.
func buildForecast(cmd *cobra.Command) (decision.Forecast, error) {
	f := decision.Forecast{
		PointEstimate:        optionPoint,
		Reasoning:            optionReasoning,
		Assumptions:          optionAssumptions,
		InsideViewAdjustment: optionAdjustment,
		BaseRateSource:       optionBaseSource,
	}

	switch {
	case optionInterval != "":
		low, high, err := parser.Interval(optionInterval)
		if err != nil {
			return decision.Forecast{}, err
		}
		f.Interval = decision.Interval{Low: low, High: high}
	case cmd.Flags().Changed("low") || cmd.Flags().Changed("high"):
		f.Interval = decision.Interval{Low: optionLow, High: optionHigh}
	default:
		f.Interval = decision.Interval{Low: optionPoint, High: optionPoint}
	}

	conf, err := parser.Confidence(optionConfidence)
	if err != nil {
		return decision.Forecast{}, err
	}
	f.ConfidenceLevel = conf

	if cmd.Flags().Changed("base-rate") {
		rate := optionBaseRate
		f.BaseRate = &rate
	}

	components, err := parseComponents(optionComponents)
	if err != nil {
		return decision.Forecast{}, err
	}
	f.Components = components

	return f, f.Validate()
}

func init() {
	optionCmd.Flags().StringVar(&optionDescription, "description", "", "What this option is")
	optionCmd.Flags().StringVar(&optionMetric, "metric", "", "Metric to forecast")
	optionCmd.Flags().Float64Var(&optionPoint, "point", 0, "Point estimate")
	optionCmd.Flags().Float64Var(&optionLow, "low", 0, "Interval low bound")
	optionCmd.Flags().Float64Var(&optionHigh, "high", 0, "Interval high bound")
	optionCmd.Flags().StringVar(&optionInterval, "interval", "", `Interval as free text (e.g. "150-200")`)
	optionCmd.Flags().StringVar(&optionConfidence, "confidence", "0.9", "Confidence the actual lands inside the interval (0.8, 80%)")
	optionCmd.Flags().StringVar(&optionReasoning, "reasoning", "", "Why this estimate")
	optionCmd.Flags().StringArrayVar(&optionAssumptions, "assumption", nil, "Assumption behind the forecast (repeatable)")
	optionCmd.Flags().Float64Var(&optionBaseRate, "base-rate", 0, "Outside-view anchor")
	optionCmd.Flags().StringVar(&optionBaseSource, "base-rate-source", "", "Where the base rate comes from")
	optionCmd.Flags().StringVar(&optionAdjustment, "adjustment", "", "How the inside view moved the anchor")
	optionCmd.Flags().StringArrayVar(&optionComponents, "component", nil, "Fermi sub-estimate as name=value (repeatable)")
	rootCmd.AddCommand(optionCmd)
}
