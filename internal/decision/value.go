package decision

// evEpsilon is the tolerance inside which two expected values count as
// tied; ties resolve to the earlier option in declaration order.
const evEpsilon = 1e-9

// OptionValue pairs an option name with its expected value.
type OptionValue struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// ExpectedValue computes the weighted mean of this option's point
// estimates, Σ(weight × point) / Σ(weight), over metrics that both carry
// positive weight and have a forecast on this option. Metrics in
// different units are summed as-is under their caller-supplied weights;
// nothing is normalized.
//
// Returns 0 when no metric qualifies (zero total weight or no
// forecasts). That zero is a deliberate sentinel, not a computed value,
// so an option with no usable forecasts never wins on a technicality of
// division.
func (o Option) ExpectedValue(metrics []Metric) float64 {
	var weighted, totalWeight float64
	for _, m := range metrics {
		if m.Weight <= 0 {
			continue
		}
		f, ok := o.Forecasts[m.Name]
		if !ok {
			continue
		}
		weighted += m.Weight * f.PointEstimate
		totalWeight += m.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

// ExpectedValues returns every option's expected value in declaration
// order.
func (d *Decision) ExpectedValues() []OptionValue {
	return expectedValues(d.Options, d.Metrics)
}

func expectedValues(options []Option, metrics []Metric) []OptionValue {
	values := make([]OptionValue, 0, len(options))
	for _, o := range options {
		values = append(values, OptionValue{Name: o.Name, Value: o.ExpectedValue(metrics)})
	}
	return values
}

// BestOption returns the option with the highest expected value under the
// decision's stored weights. Options within evEpsilon of the maximum tie,
// and the tie goes to the earliest in declaration order, so repeated calls
// on an unmutated decision always agree. Returns ErrNoOptions when there
// is nothing to rank.
func (d *Decision) BestOption() (Option, error) {
	if len(d.Options) == 0 {
		return Option{}, ErrNoOptions
	}
	return bestOf(d.Options, d.Metrics), nil
}

// bestOf assumes options is non-empty.
func bestOf(options []Option, metrics []Metric) Option {
	best := options[0]
	bestValue := best.ExpectedValue(metrics)
	for _, o := range options[1:] {
		if v := o.ExpectedValue(metrics); v > bestValue+evEpsilon {
			best = o
			bestValue = v
		}
	}
	return best
}
