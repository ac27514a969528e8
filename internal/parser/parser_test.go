package parser

import (
	"errors"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"42.5", 42.5},
		{"42.5%", 42.5},
		{"$1,200", 1200},
		{"about $1,200 or so", 1200},
		{"-3.5", -3.5},
		{"+7", 7},
		{"roughly 180k... maybe", 180},
		{"€2,500.75", 2500.75},
	}
	for _, tt := range tests {
		got, err := Number(tt.in)
		if err != nil {
			t.Errorf("Number(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Number(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNumberNoNumber(t *testing.T) {
	for _, in := range []string{"", "none", "n/a", "skip"} {
		if _, err := Number(in); !errors.Is(err, ErrNoNumber) {
			t.Errorf("Number(%q) err = %v, want ErrNoNumber", in, err)
		}
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		in        string
		low, high float64
	}{
		{"80-120", 80, 120},
		{"80 - 120", 80, 120},
		{"80 to 120", 80, 120},
		{"between 80 and 120", 80, 120},
		{"80..120", 80, 120},
		{"$150 - $200", 150, 200},
		{"7.5-10", 7.5, 10},
		{"120 to 80", 80, 120},
		{"-5 to 5", -5, 5},
		{"somewhere from 0.6 to 0.9 I think", 0.6, 0.9},
	}
	for _, tt := range tests {
		low, high, err := Interval(tt.in)
		if err != nil {
			t.Errorf("Interval(%q): %v", tt.in, err)
			continue
		}
		if low != tt.low || high != tt.high {
			t.Errorf("Interval(%q) = (%v, %v), want (%v, %v)", tt.in, low, high, tt.low, tt.high)
		}
	}
}

func TestIntervalNoInterval(t *testing.T) {
	for _, in := range []string{"", "42", "no idea"} {
		if _, _, err := Interval(in); !errors.Is(err, ErrNoInterval) {
			t.Errorf("Interval(%q) err = %v, want ErrNoInterval", in, err)
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.8", 0.8},
		{"80%", 0.8},
		{"80", 0.8},
		{"1", 1},
		{"100%", 1},
		{"0.05", 0.05},
	}
	for _, tt := range tests {
		got, err := Confidence(tt.in)
		if err != nil {
			t.Errorf("Confidence(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Confidence(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfidenceRejectsOutOfRange(t *testing.T) {
	for _, in := range []string{"0", "-0.3", "150", "101%"} {
		if _, err := Confidence(in); err == nil {
			t.Errorf("Confidence(%q) should reject", in)
		}
	}
}
