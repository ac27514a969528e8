package decision

import (
	"errors"
	"testing"
)

func TestSensitivityBaselineFirst(t *testing.T) {
	d := jobOffer(t)
	rows, err := d.SensitivityAnalysis(nil, false)
	if err != nil {
		t.Fatalf("SensitivityAnalysis() error = %v", err)
	}
	if rows[0].Scenario != "baseline" {
		t.Errorf("rows[0].Scenario = %q, want %q", rows[0].Scenario, "baseline")
	}
	if rows[0].Winner != "BigCo" {
		t.Errorf("baseline winner = %q, want %q", rows[0].Winner, "BigCo")
	}
	// Two metrics × four default factors, plus the baseline.
	if got, want := len(rows), 1+2*len(DefaultSensitivityFactors); got != want {
		t.Errorf("len(rows) = %d, want %d", got, want)
	}
}

func TestSensitivityDoesNotMutateWeights(t *testing.T) {
	d := jobOffer(t)
	if _, err := d.SensitivityAnalysis(nil, true); err != nil {
		t.Fatal(err)
	}
	if d.Metrics[0].Weight != 2 || d.Metrics[1].Weight != 1 {
		t.Errorf("weights mutated to (%v, %v), want (2, 1)",
			d.Metrics[0].Weight, d.Metrics[1].Weight)
	}
}

func TestSensitivityValuesInDeclarationOrder(t *testing.T) {
	d := jobOffer(t)
	rows, err := d.SensitivityAnalysis([]float64{0.5}, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if len(row.Values) != 2 {
			t.Fatalf("row %q has %d values, want 2", row.Scenario, len(row.Values))
		}
		if row.Values[0].Name != "Startup" || row.Values[1].Name != "BigCo" {
			t.Errorf("row %q value order = [%s %s], want [Startup BigCo]",
				row.Scenario, row.Values[0].Name, row.Values[1].Name)
		}
	}
}

func TestSensitivityDetectsRankingFlip(t *testing.T) {
	d := jobOffer(t)

	// Scaling Growth far enough up hands the win to the
	// higher-growth option.
	rows, err := d.SensitivityAnalysis([]float64{0.5, 50}, false)
	if err != nil {
		t.Fatal(err)
	}
	flips := RankingFlips(rows)
	if len(flips) == 0 {
		t.Fatal("RankingFlips() = none, want the Growth ×50 scenario")
	}
	var found bool
	for _, f := range flips {
		if f.Winner == "Startup" {
			found = true
		}
	}
	if !found {
		t.Errorf("no flip scenario picked Startup; flips = %+v", flips)
	}
}

func TestReweightedWinnerFlips(t *testing.T) {
	d := jobOffer(t)
	d.Metrics[0].Weight = 1   // Salary
	d.Metrics[1].Weight = 100 // Growth

	best, err := d.BestOption()
	if err != nil {
		t.Fatal(err)
	}
	if best.Name != "Startup" {
		t.Errorf("BestOption() = %q after re-weighting, want %q", best.Name, "Startup")
	}

	startup, _ := d.OptionByName("Startup")
	bigco, _ := d.OptionByName("BigCo")
	if got, want := startup.ExpectedValue(d.Metrics), 1030.0/101; !almostEqual(got, want) {
		t.Errorf("ExpectedValue(Startup) = %v, want %v", got, want)
	}
	if got, want := bigco.ExpectedValue(d.Metrics), 750.0/101; !almostEqual(got, want) {
		t.Errorf("ExpectedValue(BigCo) = %v, want %v", got, want)
	}
}

func TestSensitivityDomination(t *testing.T) {
	d := New("dominated", "")
	for _, m := range []Metric{
		{Name: "cost", Weight: 2},
		{Name: "quality", Weight: 1},
		{Name: "ignored", Weight: 0},
	} {
		if err := d.AddMetric(m); err != nil {
			t.Fatal(err)
		}
	}
	mk := func(cost, quality, ignored float64) map[string]Forecast {
		return map[string]Forecast{
			"cost":    {PointEstimate: cost, Interval: Interval{cost - 1, cost + 1}, ConfidenceLevel: 0.9},
			"quality": {PointEstimate: quality, Interval: Interval{quality - 1, quality + 1}, ConfidenceLevel: 0.9},
			"ignored": {PointEstimate: ignored, Interval: Interval{ignored - 1, ignored + 1}, ConfidenceLevel: 0.9},
		}
	}
	// Weaker is ahead on the zero-weight metric only, which may never count.
	if err := d.AddOption(Option{Name: "Weaker", Forecasts: mk(180, 5, 99)}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddOption(Option{Name: "Dominant", Forecasts: mk(200, 9, 0)}); err != nil {
		t.Fatal(err)
	}

	rows, err := d.SensitivityAnalysis([]float64{0.1, 0.25, 0.5, 2, 4, 10}, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row.Winner != "Dominant" {
			t.Errorf("scenario %q selected %q, want Dominant", row.Scenario, row.Winner)
		}
	}
}

func TestSensitivityEmptyOptions(t *testing.T) {
	d := New("empty", "")
	if err := d.AddMetric(Metric{Name: "m", Weight: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.SensitivityAnalysis(nil, false); !errors.Is(err, ErrNoOptions) {
		t.Errorf("SensitivityAnalysis() error = %v, want ErrNoOptions", err)
	}
}

func TestRankingFlipsEmptyInput(t *testing.T) {
	if got := RankingFlips(nil); got != nil {
		t.Errorf("RankingFlips(nil) = %v, want nil", got)
	}
}
