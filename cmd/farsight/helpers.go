package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// parseReviewIn parses the --review-in flag. Calendar-ish suffixes cover
// the common cases (d days, w weeks, m months as 30 days, y years as 365
// days); anything else falls through to time.ParseDuration.
func parseReviewIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	suffix := s[len(s)-1]
	if n, err := strconv.ParseFloat(s[:len(s)-1], 64); err == nil {
		const day = 24 * time.Hour
		switch suffix {
		case 'd':
			return time.Duration(n * float64(day)), nil
		case 'w':
			return time.Duration(n * float64(7*day)), nil
		case 'm':
			return time.Duration(n * float64(30*day)), nil
		case 'y':
			return time.Duration(n * float64(365*day)), nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration %q: use 90d, 12w, 6m, 1y, or a Go duration", s)
	}
	return d, nil
}

// parseFactors parses the --factors CSV into a perturbation grid.
func parseFactors(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	factors := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("factor %q: %w", p, err)
		}
		if f < 0 {
			return nil, fmt.Errorf("factor %q: must not be negative", p)
		}
		factors = append(factors, f)
	}
	if len(factors) == 0 {
		return nil, fmt.Errorf("no factors in %q", s)
	}
	return factors, nil
}

// parseComponents parses repeated --component name=value flags.
func parseComponents(values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	components := make(map[string]float64, len(values))
	for _, kv := range values {
		name, raw, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("component %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", kv, err)
		}
		components[name] = v
	}
	return components, nil
}

// unifiedDiff renders a unified diff between two renderings of a record.
func unifiedDiff(before, after []byte, fromFile, toFile string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
