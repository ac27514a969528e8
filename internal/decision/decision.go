// Package decision holds the decision journal's data model: weighted
// metrics, per-option forecasts, and the decision record that ties them
// together through its draft → decided → scored lifecycle.
package decision

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the derived lifecycle state of a decision.
type Status string

const (
	// StatusOpen means no option has been chosen yet.
	StatusOpen Status = "open"
	// StatusPending means an option was chosen but outcomes are not recorded.
	StatusPending Status = "pending"
	// StatusScored means actual outcomes have been recorded.
	StatusScored Status = "scored"
)

// Metric is a named, weighted dimension along which options are compared.
// Weight expresses relative importance; a zero weight keeps the metric on
// the record but excludes it from aggregation.
type Metric struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Target      *float64 `json:"target,omitempty" yaml:"target,omitempty"`
	Weight      float64  `json:"weight" yaml:"weight"`
}

// Validate checks the metric's structural invariants.
func (m Metric) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return &ValidationError{Field: "metric.name", Reason: "must not be empty"}
	}
	if m.Weight < 0 {
		return &ValidationError{Field: "metric.weight", Reason: "must not be negative"}
	}
	return nil
}

// Interval is a forecast's confidence interval.
type Interval struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether v falls inside the interval, bounds included.
func (i Interval) Contains(v float64) bool {
	return v >= i.Low && v <= i.High
}

// Forecast is a single prediction for one metric under one option: a point
// estimate, an interval the forecaster assigns ConfidenceLevel probability
// to, and the reasoning behind both. BaseRate captures the outside-view
// anchor used before case-specific adjustment, when the forecaster recorded
// one. Components optionally break the point estimate into named
// sub-estimates; their sum is never reconciled against the point estimate.
type Forecast struct {
	PointEstimate        float64            `json:"point_estimate" yaml:"point_estimate"`
	Interval             Interval           `json:"interval" yaml:"interval"`
	ConfidenceLevel      float64            `json:"confidence_level" yaml:"confidence_level"`
	Reasoning            string             `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Assumptions          []string           `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
	Components           map[string]float64 `json:"components,omitempty" yaml:"components,omitempty"`
	BaseRate             *float64           `json:"base_rate,omitempty" yaml:"base_rate,omitempty"`
	BaseRateSource       string             `json:"base_rate_source,omitempty" yaml:"base_rate_source,omitempty"`
	InsideViewAdjustment string             `json:"inside_view_adjustment,omitempty" yaml:"inside_view_adjustment,omitempty"`
}

// Validate checks the forecast's structural invariants.
func (f Forecast) Validate() error {
	if f.Interval.Low > f.Interval.High {
		return &ValidationError{Field: "forecast.interval", Reason: "low must not exceed high"}
	}
	if f.ConfidenceLevel <= 0 || f.ConfidenceLevel > 1 {
		return &ValidationError{Field: "forecast.confidence_level", Reason: "must be in (0, 1]"}
	}
	return nil
}

// Option is one competing alternative, holding a forecast per metric name.
// A metric with no forecast is excluded from this option's aggregation
// rather than counted as zero.
type Option struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Forecasts   map[string]Forecast `json:"forecasts" yaml:"forecasts"`
}

// Validate checks the option and every forecast it carries.
func (o Option) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return &ValidationError{Field: "option.name", Reason: "must not be empty"}
	}
	for metric, f := range o.Forecasts {
		if err := f.Validate(); err != nil {
			return &ValidationError{
				Field:  "option " + o.Name + ", metric " + metric,
				Reason: err.Error(),
			}
		}
	}
	return nil
}

// Decision is one journaled decision: the question under consideration,
// the metrics that define success, the competing options with their
// forecasts, and (after the fact) what was chosen and what actually
// happened.
type Decision struct {
	// ID is an opaque identifier, unique within a store. Commands accept
	// any unambiguous prefix of it.
	ID string `json:"id" yaml:"id"`
	// Question is the decision being made.
	Question string `json:"question" yaml:"question"`
	// Context is free-form background for future review.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
	// Metrics lists the weighted dimensions of success, in declaration
	// order and with unique names.
	Metrics []Metric `json:"metrics" yaml:"metrics"`
	// Options lists the competing alternatives, in declaration order and
	// with unique names.
	Options []Option `json:"options" yaml:"options"`
	// ChosenOption names the option that was picked; empty while open.
	ChosenOption string `json:"chosen_option,omitempty" yaml:"chosen_option,omitempty"`
	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	// DecidedAt is when ChosenOption was set.
	DecidedAt *time.Time `json:"decided_at,omitempty" yaml:"decided_at,omitempty"`
	// ReviewDate is when outcomes should be checked in on.
	ReviewDate *time.Time `json:"review_date,omitempty" yaml:"review_date,omitempty"`
	// ActualOutcomes maps metric name to the observed value, recorded at
	// scoring time. Metrics may be missing when no observation exists.
	ActualOutcomes map[string]float64 `json:"actual_outcomes,omitempty" yaml:"actual_outcomes,omitempty"`
	// ScoredAt is when outcomes were recorded.
	ScoredAt *time.Time `json:"scored_at,omitempty" yaml:"scored_at,omitempty"`
	// Reflections is the free-form retrospective written while scoring.
	Reflections string `json:"reflections,omitempty" yaml:"reflections,omitempty"`
}

// NewID returns a fresh short decision id.
func NewID() string {
	return uuid.New().String()[:8]
}

// New creates a draft decision with a fresh id.
func New(question, context string) *Decision {
	return &Decision{
		ID:        NewID(),
		Question:  question,
		Context:   context,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the record's structural invariants: non-empty id and
// question, unique metric and option names, and every nested metric and
// forecast valid. Forecast keys are not required to reference a defined
// metric; unknown keys are simply ignored by aggregation.
func (d *Decision) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.Question) == "" {
		return &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	seenMetrics := make(map[string]bool, len(d.Metrics))
	for _, m := range d.Metrics {
		if err := m.Validate(); err != nil {
			return err
		}
		if seenMetrics[m.Name] {
			return &ValidationError{Field: "metric.name", Reason: "duplicate name " + m.Name}
		}
		seenMetrics[m.Name] = true
	}
	seenOptions := make(map[string]bool, len(d.Options))
	for _, o := range d.Options {
		if err := o.Validate(); err != nil {
			return err
		}
		if seenOptions[o.Name] {
			return &ValidationError{Field: "option.name", Reason: "duplicate name " + o.Name}
		}
		seenOptions[o.Name] = true
	}
	if d.ChosenOption != "" && !seenOptions[d.ChosenOption] {
		return &ValidationError{Field: "chosen_option", Reason: "no option named " + d.ChosenOption}
	}
	for metric := range d.ActualOutcomes {
		if !seenMetrics[metric] {
			return &ValidationError{Field: "actual_outcomes", Reason: "no metric named " + metric}
		}
	}
	return nil
}

// MetricByName returns the metric with the given name.
func (d *Decision) MetricByName(name string) (Metric, bool) {
	for _, m := range d.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// OptionByName returns a pointer into d.Options for the named option.
func (d *Decision) OptionByName(name string) (*Option, bool) {
	for i := range d.Options {
		if d.Options[i].Name == name {
			return &d.Options[i], true
		}
	}
	return nil, false
}

// AddMetric validates m and appends it, rejecting duplicate names.
func (d *Decision) AddMetric(m Metric) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, ok := d.MetricByName(m.Name); ok {
		return &ValidationError{Field: "metric.name", Reason: "duplicate name " + m.Name}
	}
	d.Metrics = append(d.Metrics, m)
	return nil
}

// AddOption validates o and appends it, rejecting duplicate names.
func (d *Decision) AddOption(o Option) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, ok := d.OptionByName(o.Name); ok {
		return &ValidationError{Field: "option.name", Reason: "duplicate name " + o.Name}
	}
	d.Options = append(d.Options, o)
	return nil
}

// SetForecast attaches f to the named option under the named metric,
// replacing any earlier forecast for that metric. The metric must already
// be defined on the decision so trivial typos surface immediately.
func (d *Decision) SetForecast(option, metric string, f Forecast) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, ok := d.MetricByName(metric); !ok {
		return ErrUnknownMetric
	}
	o, ok := d.OptionByName(option)
	if !ok {
		return ErrUnknownOption
	}
	if o.Forecasts == nil {
		o.Forecasts = make(map[string]Forecast)
	}
	o.Forecasts[metric] = f
	return nil
}

// Decide records the chosen option and, optionally, a review date.
func (d *Decision) Decide(option string, at time.Time, review *time.Time) error {
	if _, ok := d.OptionByName(option); !ok {
		return ErrUnknownOption
	}
	d.ChosenOption = option
	d.DecidedAt = &at
	if review != nil {
		d.ReviewDate = review
	}
	return nil
}

// Score records observed outcomes and the scoring time. Outcomes may cover
// only a subset of the metrics; keys that name no defined metric are
// rejected. Scoring requires a chosen option, since calibration reads the
// chosen option's forecasts. Any earlier outcomes are replaced wholesale.
func (d *Decision) Score(outcomes map[string]float64, reflections string, at time.Time) error {
	if d.ChosenOption == "" {
		return ErrNotDecided
	}
	if len(outcomes) == 0 {
		return &ValidationError{Field: "actual_outcomes", Reason: "no outcomes recorded"}
	}
	for metric := range outcomes {
		if _, ok := d.MetricByName(metric); !ok {
			return ErrUnknownMetric
		}
	}
	copied := make(map[string]float64, len(outcomes))
	for k, v := range outcomes {
		copied[k] = v
	}
	d.ActualOutcomes = copied
	d.ScoredAt = &at
	if reflections != "" {
		d.Reflections = reflections
	}
	return nil
}

// Status derives the lifecycle state from which fields are set.
func (d *Decision) Status() Status {
	switch {
	case d.Scored():
		return StatusScored
	case d.Decided():
		return StatusPending
	default:
		return StatusOpen
	}
}

// Decided reports whether an option has been chosen.
func (d *Decision) Decided() bool {
	return d.ChosenOption != "" && d.DecidedAt != nil
}

// Scored reports whether outcomes have been recorded.
func (d *Decision) Scored() bool {
	return d.ScoredAt != nil && len(d.ActualOutcomes) > 0
}

// DueForReview reports whether the decision is decided, unscored, and past
// its review date as of now.
func (d *Decision) DueForReview(now time.Time) bool {
	return d.Decided() && !d.Scored() && d.ReviewDate != nil && !d.ReviewDate.After(now)
}
