// Package render turns decisions and calibration reports into terminal
// output: status icons, tabwriter tables, and the multi-section views
// behind `show` and `calibration`.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/farsight-cli/farsight/internal/calibration"
	"github.com/farsight-cli/farsight/internal/decision"
)

// Icon returns the one-glyph status marker used in listings.
func Icon(s decision.Status) string {
	switch s {
	case decision.StatusScored:
		return "✓"
	case decision.StatusPending:
		return "⏳"
	default:
		return "○"
	}
}

const timeLayout = "2006-01-02 15:04"

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// List writes the decision listing: id, status, question, created and
// review dates.
func List(w io.Writer, decisions []decision.Decision) error {
	if len(decisions) == 0 {
		_, err := fmt.Fprintln(w, "No decisions.")
		return err
	}
	table := NewTable(w, "ID", "", "QUESTION", "CREATED", "REVIEW")
	table.SetMaxWidth(2, 50)
	for i := range decisions {
		d := &decisions[i]
		table.AddRow(d.ID, Icon(d.Status()), d.Question,
			d.CreatedAt.Format("2006-01-02"), formatTime(d.ReviewDate))
	}
	return table.Render()
}

// Show writes the full decision view: metrics, options with their
// forecasts, expected values with the leader marked, and outcomes once
// scored.
func Show(w io.Writer, d *decision.Decision) error {
	fmt.Fprintf(w, "Decision: %s\n", d.Question)
	fmt.Fprintf(w, "ID: %s\n", d.ID)
	fmt.Fprintf(w, "Status: %s %s\n", Icon(d.Status()), d.Status())
	fmt.Fprintf(w, "Created: %s\n", d.CreatedAt.Format(timeLayout))
	if d.Context != "" {
		fmt.Fprintf(w, "Context: %s\n", d.Context)
	}

	if len(d.Metrics) > 0 {
		fmt.Fprintf(w, "\nMetrics:\n")
		for _, m := range d.Metrics {
			fmt.Fprintf(w, "  - %s (weight %g%s)", m.Name, m.Weight, unitSuffix(m.Unit))
			if m.Description != "" {
				fmt.Fprintf(w, ": %s", m.Description)
			}
			if m.Target != nil {
				fmt.Fprintf(w, " [target %g]", *m.Target)
			}
			fmt.Fprintln(w)
		}
	}

	if len(d.Options) > 0 {
		fmt.Fprintf(w, "\nOptions:\n")
		for _, o := range d.Options {
			fmt.Fprintf(w, "\n  %s", o.Name)
			if o.Description != "" {
				fmt.Fprintf(w, ": %s", o.Description)
			}
			fmt.Fprintln(w)
			writeForecasts(w, d.Metrics, o.Forecasts)
		}

		fmt.Fprintf(w, "\nExpected values:\n")
		writeExpectedValues(w, d)
	}

	if d.ChosenOption != "" {
		fmt.Fprintf(w, "\nChosen: %s (%s)\n", d.ChosenOption, formatTime(d.DecidedAt))
	}
	if d.ReviewDate != nil {
		fmt.Fprintf(w, "Review: %s\n", formatTime(d.ReviewDate))
	}

	if d.Scored() {
		fmt.Fprintf(w, "\nActual outcomes (%s):\n", formatTime(d.ScoredAt))
		writeOutcomes(w, d)
	}
	if d.Reflections != "" {
		fmt.Fprintf(w, "\nReflections: %s\n", d.Reflections)
	}
	return nil
}

// writeForecasts prints an option's forecasts in metric declaration order,
// then any forecasts keyed by names no metric defines, alphabetically.
func writeForecasts(w io.Writer, metrics []decision.Metric, forecasts map[string]decision.Forecast) {
	seen := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		seen[m.Name] = true
		f, ok := forecasts[m.Name]
		if !ok {
			continue
		}
		writeForecast(w, m.Name, m.Unit, f)
	}
	var extras []string
	for name := range forecasts {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		writeForecast(w, name, "", forecasts[name])
	}
}

func writeForecast(w io.Writer, name, unit string, f decision.Forecast) {
	fmt.Fprintf(w, "    %s: %g%s (%g–%g @ %.0f%%)\n",
		name, f.PointEstimate, unitSuffix(unit), f.Interval.Low, f.Interval.High, f.ConfidenceLevel*100)
	if f.BaseRate != nil {
		fmt.Fprintf(w, "      base rate: %g", *f.BaseRate)
		if f.BaseRateSource != "" {
			fmt.Fprintf(w, " (%s)", f.BaseRateSource)
		}
		fmt.Fprintln(w)
	}
	if f.InsideViewAdjustment != "" {
		fmt.Fprintf(w, "      adjustment: %s\n", f.InsideViewAdjustment)
	}
	if f.Reasoning != "" {
		fmt.Fprintf(w, "      reasoning: %s\n", f.Reasoning)
	}
	for _, a := range f.Assumptions {
		fmt.Fprintf(w, "      assumes: %s\n", a)
	}
	if len(f.Components) > 0 {
		names := make([]string, 0, len(f.Components))
		for n := range f.Components {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprint(w, "      components:")
		for _, n := range names {
			fmt.Fprintf(w, " %s=%g", n, f.Components[n])
		}
		fmt.Fprintln(w)
	}
}

func writeExpectedValues(w io.Writer, d *decision.Decision) {
	values := d.ExpectedValues()
	best, err := d.BestOption()
	for _, v := range values {
		marker := " "
		if err == nil && v.Name == best.Name {
			marker = "→"
		}
		fmt.Fprintf(w, "  %s %s: %.2f\n", marker, v.Name, v.Value)
	}
}

// Outcomes writes the scored view on its own: each recorded actual next
// to the chosen option's forecast, marked inside or outside the interval.
func Outcomes(w io.Writer, d *decision.Decision) error {
	writeOutcomes(w, d)
	return nil
}

func writeOutcomes(w io.Writer, d *decision.Decision) {
	chosen, haveChosen := d.OptionByName(d.ChosenOption)
	for _, m := range d.Metrics {
		actual, ok := d.ActualOutcomes[m.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s: %g%s", m.Name, actual, unitSuffix(m.Unit))
		if haveChosen {
			if f, ok := chosen.Forecasts[m.Name]; ok {
				hit := "✗ outside"
				if f.Interval.Contains(actual) {
					hit = "✓ inside"
				}
				fmt.Fprintf(w, "  (forecast %g, %s %g–%g)", f.PointEstimate, hit, f.Interval.Low, f.Interval.High)
			}
		}
		fmt.Fprintln(w)
	}
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}

// Sensitivity writes the perturbation table: one row per scenario with
// the winner and every option's expected value.
func Sensitivity(w io.Writer, rows []decision.SensitivityRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No scenarios.")
		return err
	}
	headers := []string{"SCENARIO", "WINNER"}
	for _, v := range rows[0].Values {
		headers = append(headers, v.Name)
	}
	table := NewTable(w, headers...)
	for _, row := range rows {
		cells := []string{row.Scenario, row.Winner}
		for _, v := range row.Values {
			cells = append(cells, strconv.FormatFloat(v.Value, 'f', 2, 64))
		}
		table.AddRow(cells...)
	}
	if err := table.Render(); err != nil {
		return err
	}

	if flips := decision.RankingFlips(rows); len(flips) > 0 {
		fmt.Fprintf(w, "\n⚠ ranking flips in %d of %d scenarios:\n", len(flips), len(rows)-1)
		for _, f := range flips {
			fmt.Fprintf(w, "  %s → %s\n", f.Scenario, f.Winner)
		}
	} else {
		fmt.Fprintf(w, "\nRanking is stable across all scenarios.\n")
	}
	return nil
}

// Calibration writes the population report. An empty journal renders as
// an informational note, not an error.
func Calibration(w io.Writer, r calibration.Report) error {
	fmt.Fprintln(w, "Calibration Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Decisions scored: %d\n", r.Decisions)
	fmt.Fprintf(w, "Forecasts scored: %d\n", r.Samples)

	if r.Samples == 0 {
		_, err := fmt.Fprintln(w, "\nNot enough scored decisions yet. Score a decision to start tracking calibration.")
		return err
	}

	if r.OverallCoverage != nil && r.MeanConfidence != nil {
		fmt.Fprintf(w, "\nCoverage: %.1f%%\n", *r.OverallCoverage*100)
		fmt.Fprintf(w, "Expected: %.1f%%\n", *r.MeanConfidence*100)
		fmt.Fprintf(w, "\n%s\n", r.Interpretation)
	}

	if len(r.Buckets) > 0 {
		fmt.Fprintln(w)
		table := NewTable(w, "CONFIDENCE", "SAMPLES", "HITS", "COVERAGE", "ERROR")
		for _, b := range r.Buckets {
			table.AddRow(
				fmt.Sprintf("%.0f%%", b.Confidence*100),
				strconv.Itoa(b.Samples),
				strconv.Itoa(b.Hits),
				fmt.Sprintf("%.1f%%", b.Coverage*100),
				fmt.Sprintf("%.3f", b.Error),
			)
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if r.MAE != nil {
		fmt.Fprintf(w, "\nMean absolute error: %.2f\n", *r.MAE)
	}
	if r.MRE != nil {
		fmt.Fprintf(w, "Mean relative error: %.1f%%", *r.MRE*100)
		if r.ZeroActuals > 0 {
			fmt.Fprintf(w, " (%d zero-valued actuals excluded)", r.ZeroActuals)
		}
		fmt.Fprintln(w)
	}
	if r.Brier != nil {
		fmt.Fprintf(w, "Brier score: %.3f (%d probability forecasts)\n", *r.Brier, r.BrierSamples)
	}
	return nil
}
