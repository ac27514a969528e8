package calibration

// Bucket is one confidence level's calibration line: how often actuals
// landed inside intervals stated at that confidence.
type Bucket struct {
	Confidence float64 `json:"confidence"`
	Samples    int     `json:"samples"`
	Hits       int     `json:"hits"`
	Coverage   float64 `json:"coverage"`
	// Error is |coverage − stated confidence|.
	Error float64 `json:"calibration_error"`
}

// Report is the population-level calibration summary. Pointer fields are
// nil when no qualifying sample exists for that statistic, which keeps
// "no data" distinguishable from a genuine 0.0.
type Report struct {
	// Decisions counts scored decisions seen, Samples the (forecast,
	// actual) pairs extracted from them.
	Decisions int `json:"decisions"`
	Samples   int `json:"samples"`

	// Buckets is the calibration curve: one entry per stated confidence
	// level, ascending.
	Buckets []Bucket `json:"buckets,omitempty"`

	// OverallCoverage is the hit rate across all samples regardless of
	// confidence level; MeanConfidence is what the forecaster claimed on
	// average. Their gap drives Interpretation.
	OverallCoverage *float64 `json:"overall_coverage,omitempty"`
	MeanConfidence  *float64 `json:"mean_confidence,omitempty"`
	Interpretation  string   `json:"interpretation,omitempty"`

	// MAE is the mean absolute point-estimate error over all samples.
	MAE *float64 `json:"mae,omitempty"`

	// MRE is the mean relative error over samples with a non-zero actual;
	// ZeroActuals counts the samples excluded to keep the division sound.
	MRE         *float64 `json:"mre,omitempty"`
	ZeroActuals int      `json:"zero_actuals,omitempty"`

	// Brier covers only probability-shaped samples (point in [0,1],
	// actual 0 or 1); BrierSamples says how many qualified.
	Brier        *float64 `json:"brier,omitempty"`
	BrierSamples int      `json:"brier_samples,omitempty"`
}

// Insufficient reports whether the corpus had no scorable samples at all.
func (r Report) Insufficient() bool {
	return r.Samples == 0
}
