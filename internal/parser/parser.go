// Package parser extracts numeric estimates from free-form answers typed
// at the interactive prompts. People answer "about $1,200", "80-120", or
// "between 80 and 120" rather than clean floats; the scoring flow accepts
// all of those instead of bouncing the user.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoNumber is returned when an answer contains nothing numeric.
var ErrNoNumber = errors.New("no number found")

// ErrNoInterval is returned when an answer does not contain two numbers
// to form a low-high range.
var ErrNoInterval = errors.New("no interval found")

const numberExpr = `[-+]?[$€£]?\d[\d,]*(?:\.\d+)?%?`

// numberPattern matches a single numeric token, allowing a sign, a
// currency symbol, thousands separators, and a trailing percent sign.
var numberPattern = regexp.MustCompile(numberExpr)

// rangePattern matches two numeric tokens joined by a range word or
// punctuation, so the dash in "80-120" reads as a separator rather than
// a minus sign on the second number.
var rangePattern = regexp.MustCompile(`(?i)(` + numberExpr + `)\s*(?:-|–|—|\.\.+|to|and|through)\s*(` + numberExpr + `)`)

// Number extracts the first numeric value from s. Currency symbols,
// thousands separators, and a trailing % are stripped; "42.5%" parses as
// 42.5, not 0.425, because outcome metrics are routinely expressed in
// percentage points.
func Number(s string) (float64, error) {
	nums := numbers(s)
	if len(nums) == 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrNoNumber)
	}
	return nums[0], nil
}

// Interval extracts a (low, high) range from s. Accepted shapes include
// "80-120", "80 to 120", "between 80 and 120", and "80..120". The bounds
// are swapped when the user gave them high-first.
func Interval(s string) (low, high float64, err error) {
	if m := rangePattern.FindStringSubmatch(s); m != nil {
		a, aok := parseToken(m[1])
		b, bok := parseToken(m[2])
		if aok && bok {
			return ordered(a, b)
		}
	}
	nums := numbers(s)
	if len(nums) < 2 {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrNoInterval)
	}
	return ordered(nums[0], nums[1])
}

// Confidence parses a confidence level, accepting both probabilities and
// percentages: "0.8", "80%", and a bare "80" all yield 0.8. Values outside
// (0, 1] after normalization are rejected.
func Confidence(s string) (float64, error) {
	v, err := Number(s)
	if err != nil {
		return 0, err
	}
	if v > 1 && v <= 100 {
		v /= 100
	}
	if v <= 0 || v > 1 {
		return 0, fmt.Errorf("confidence %q must be in (0, 1]", s)
	}
	return v, nil
}

func ordered(a, b float64) (float64, float64, error) {
	if a > b {
		a, b = b, a
	}
	return a, b, nil
}

// numbers returns every numeric token in s, in order of appearance.
func numbers(s string) []float64 {
	tokens := numberPattern.FindAllString(s, -1)
	out := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		if v, ok := parseToken(tok); ok {
			out = append(out, v)
		}
	}
	return out
}

// parseToken strips currency symbols, thousands separators, and a percent
// sign from one matched token and parses what remains.
func parseToken(tok string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", "€", "", "£", "", ",", "", "%", "").Replace(tok)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
