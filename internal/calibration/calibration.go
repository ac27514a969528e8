// Package calibration scores a population of past forecasts against the
// outcomes that were eventually observed: interval coverage per stated
// confidence level, absolute and relative point-estimate error, and Brier
// scores for the probability-shaped subset.
package calibration

import (
	"math"
	"sort"

	"github.com/farsight-cli/farsight/internal/decision"
)

// Sample is one (forecast, actual) pair pulled from a scored decision:
// the chosen option's forecast for a metric together with the value that
// metric actually took.
type Sample struct {
	DecisionID string
	Metric     string
	Forecast   decision.Forecast
	Actual     float64
}

// Hit reports whether the actual landed inside the forecast interval.
func (s Sample) Hit() bool {
	return s.Forecast.Interval.Contains(s.Actual)
}

// Collect extracts samples from every scored decision: for each metric
// with a recorded outcome, the chosen option's forecast for that metric.
// Metrics missing an outcome or a forecast contribute nothing and raise
// nothing; unscored or undecided records are passed over entirely. Order
// is deterministic: decisions as given, metrics in declaration order.
func Collect(decisions []decision.Decision) []Sample {
	var samples []Sample
	for i := range decisions {
		d := &decisions[i]
		if !d.Scored() {
			continue
		}
		chosen, ok := d.OptionByName(d.ChosenOption)
		if !ok {
			continue
		}
		for _, m := range d.Metrics {
			actual, ok := d.ActualOutcomes[m.Name]
			if !ok {
				continue
			}
			f, ok := chosen.Forecasts[m.Name]
			if !ok {
				continue
			}
			samples = append(samples, Sample{
				DecisionID: d.ID,
				Metric:     m.Name,
				Forecast:   f,
				Actual:     actual,
			})
		}
	}
	return samples
}

// DefaultTolerance is how far a stated confidence may sit from a queried
// level and still count toward that level's coverage.
const DefaultTolerance = 0.05

// Engine computes calibration statistics over scored decisions.
type Engine struct {
	// Tolerance widens confidence-level matching in Coverage queries and
	// sets the dead band for the calibration interpretation.
	Tolerance float64
}

// New returns an engine with the given confidence tolerance; zero or
// negative selects DefaultTolerance.
func New(tolerance float64) *Engine {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Engine{Tolerance: tolerance}
}

// Coverage returns the fraction of samples whose stated confidence is
// within the engine's tolerance of level and whose actual fell inside the
// forecast interval, along with how many samples qualified. A zero count
// means no data, which is distinct from a coverage of zero.
func (e *Engine) Coverage(samples []Sample, level float64) (float64, int) {
	var n, hits int
	for _, s := range samples {
		if math.Abs(s.Forecast.ConfidenceLevel-level) > e.Tolerance {
			continue
		}
		n++
		if s.Hit() {
			hits++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(hits) / float64(n), n
}

// Report computes the full calibration report over the given decisions.
// Statistics with no qualifying samples stay nil rather than reading as a
// zero score; Report never fails, because an empty journal is a normal
// state, not an error.
func (e *Engine) Report(decisions []decision.Decision) Report {
	samples := Collect(decisions)

	r := Report{Samples: len(samples)}
	for i := range decisions {
		if decisions[i].Scored() {
			r.Decisions++
		}
	}
	if len(samples) == 0 {
		return r
	}

	r.Buckets = e.buckets(samples)

	var hits int
	var confSum float64
	for _, s := range samples {
		if s.Hit() {
			hits++
		}
		confSum += s.Forecast.ConfidenceLevel
	}
	r.OverallCoverage = ptr(float64(hits) / float64(len(samples)))
	r.MeanConfidence = ptr(confSum / float64(len(samples)))
	r.Interpretation = e.interpret(*r.OverallCoverage, *r.MeanConfidence)

	var absSum float64
	for _, s := range samples {
		absSum += math.Abs(s.Actual - s.Forecast.PointEstimate)
	}
	r.MAE = ptr(absSum / float64(len(samples)))

	var relSum float64
	var relN int
	for _, s := range samples {
		if s.Actual == 0 {
			r.ZeroActuals++
			continue
		}
		relSum += math.Abs(s.Actual-s.Forecast.PointEstimate) / math.Abs(s.Actual)
		relN++
	}
	if relN > 0 {
		r.MRE = ptr(relSum / float64(relN))
	}

	var brierSum float64
	for _, s := range samples {
		if !brierShaped(s) {
			continue
		}
		diff := s.Forecast.PointEstimate - s.Actual
		brierSum += diff * diff
		r.BrierSamples++
	}
	if r.BrierSamples > 0 {
		r.Brier = ptr(brierSum / float64(r.BrierSamples))
	}

	return r
}

// brierShaped reports whether the sample is a probability forecast of a
// binary outcome: point in [0,1], actual exactly 0 or 1.
func brierShaped(s Sample) bool {
	p := s.Forecast.PointEstimate
	return p >= 0 && p <= 1 && (s.Actual == 0 || s.Actual == 1)
}

// buckets groups samples by their exact stated confidence level and
// reports coverage and calibration error per level, ascending. Forecasts
// made at slightly different levels land in separate buckets; tolerance
// only widens point queries through Coverage.
func (e *Engine) buckets(samples []Sample) []Bucket {
	byLevel := make(map[float64][]Sample)
	for _, s := range samples {
		level := s.Forecast.ConfidenceLevel
		byLevel[level] = append(byLevel[level], s)
	}

	levels := make([]float64, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Float64s(levels)

	buckets := make([]Bucket, 0, len(levels))
	for _, level := range levels {
		group := byLevel[level]
		hits := 0
		for _, s := range group {
			if s.Hit() {
				hits++
			}
		}
		coverage := float64(hits) / float64(len(group))
		buckets = append(buckets, Bucket{
			Confidence: level,
			Samples:    len(group),
			Hits:       hits,
			Coverage:   coverage,
			Error:      math.Abs(coverage - level),
		})
	}
	return buckets
}

// interpret maps overall coverage against mean stated confidence onto a
// one-line reading of the forecaster's habit.
func (e *Engine) interpret(coverage, meanConfidence float64) string {
	diff := coverage - meanConfidence
	switch {
	case math.Abs(diff) <= e.Tolerance:
		return "well-calibrated"
	case diff < 0:
		return "overconfident (intervals too narrow)"
	default:
		return "underconfident (intervals wider than needed)"
	}
}

func ptr(v float64) *float64 { return &v }
