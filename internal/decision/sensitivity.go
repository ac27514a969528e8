package decision

import "fmt"

// DefaultSensitivityFactors is the weight-perturbation grid used when the
// caller does not supply one.
var DefaultSensitivityFactors = []float64{0.1, 0.5, 2, 10}

// SensitivityRow is one perturbation scenario's outcome: the winning
// option under the perturbed weights and every option's expected value in
// declaration order.
type SensitivityRow struct {
	Scenario string        `json:"scenario" yaml:"scenario"`
	Winner   string        `json:"winner" yaml:"winner"`
	Values   []OptionValue `json:"expected_values" yaml:"expected_values"`
}

// SensitivityAnalysis re-ranks the options under a grid of weight
// perturbations: the unperturbed baseline first, then each positive-weight
// metric's weight scaled by each factor in turn, then (when zeroOut is
// set) each positive-weight metric dropped entirely. Stored weights are
// never mutated; every scenario works on a copy. Factors of exactly 1 are
// skipped as no-ops, as are zero-weight metrics, which no scaling can
// bring into the aggregation.
//
// A nil factors slice selects DefaultSensitivityFactors. Returns
// ErrNoOptions when the decision has no options.
func (d *Decision) SensitivityAnalysis(factors []float64, zeroOut bool) ([]SensitivityRow, error) {
	if len(d.Options) == 0 {
		return nil, ErrNoOptions
	}
	if factors == nil {
		factors = DefaultSensitivityFactors
	}

	rows := []SensitivityRow{d.scenario("baseline", d.Metrics)}
	for i, m := range d.Metrics {
		if m.Weight <= 0 {
			continue
		}
		for _, factor := range factors {
			if factor == 1 {
				continue
			}
			perturbed := copyMetrics(d.Metrics)
			perturbed[i].Weight = m.Weight * factor
			desc := fmt.Sprintf("%s weight ×%g", m.Name, factor)
			rows = append(rows, d.scenario(desc, perturbed))
		}
		if zeroOut {
			perturbed := copyMetrics(d.Metrics)
			perturbed[i].Weight = 0
			desc := fmt.Sprintf("%s dropped", m.Name)
			rows = append(rows, d.scenario(desc, perturbed))
		}
	}
	return rows, nil
}

func (d *Decision) scenario(desc string, metrics []Metric) SensitivityRow {
	return SensitivityRow{
		Scenario: desc,
		Winner:   bestOf(d.Options, metrics).Name,
		Values:   expectedValues(d.Options, metrics),
	}
}

func copyMetrics(metrics []Metric) []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// RankingFlips returns the scenarios whose winner differs from the first
// (baseline) row. An empty result means the ranking is robust across the
// whole grid.
func RankingFlips(rows []SensitivityRow) []SensitivityRow {
	if len(rows) == 0 {
		return nil
	}
	var flips []SensitivityRow
	for _, row := range rows[1:] {
		if row.Winner != rows[0].Winner {
			flips = append(flips, row)
		}
	}
	return flips
}
