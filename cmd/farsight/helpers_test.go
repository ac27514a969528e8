package main

import (
	"strings"
	"testing"
	"time"
)

func TestParseReviewIn(t *testing.T) {
	const day = 24 * time.Hour
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"90d", 90 * day},
		{"2w", 14 * day},
		{"6m", 180 * day},
		{"1y", 365 * day},
		{"36h", 36 * time.Hour},
		{"1.5d", 36 * time.Hour},
	}
	for _, tt := range tests {
		got, err := parseReviewIn(tt.in)
		if err != nil {
			t.Errorf("parseReviewIn(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseReviewIn(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseReviewInRejects(t *testing.T) {
	for _, in := range []string{"", "soon", "d", "ninety days"} {
		if _, err := parseReviewIn(in); err == nil {
			t.Errorf("parseReviewIn(%q) should error", in)
		}
	}
}

func TestParseFactors(t *testing.T) {
	got, err := parseFactors("0.1, 0.5,2,10")
	if err != nil {
		t.Fatalf("parseFactors: %v", err)
	}
	want := []float64{0.1, 0.5, 2, 10}
	if len(got) != len(want) {
		t.Fatalf("parseFactors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("factor[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseFactorsRejects(t *testing.T) {
	for _, in := range []string{"", ",,", "abc", "0.5,-1"} {
		if _, err := parseFactors(in); err == nil {
			t.Errorf("parseFactors(%q) should error", in)
		}
	}
}

func TestParseComponents(t *testing.T) {
	got, err := parseComponents([]string{"base=150", "equity = 30.5"})
	if err != nil {
		t.Fatalf("parseComponents: %v", err)
	}
	if got["base"] != 150 || got["equity"] != 30.5 {
		t.Errorf("parseComponents = %v", got)
	}

	if m, err := parseComponents(nil); err != nil || m != nil {
		t.Errorf("parseComponents(nil) = %v, %v; want nil, nil", m, err)
	}

	for _, in := range [][]string{{"base"}, {"=150"}, {"base=abc"}} {
		if _, err := parseComponents(in); err == nil {
			t.Errorf("parseComponents(%v) should error", in)
		}
	}
}

func TestUnifiedDiff(t *testing.T) {
	before := []byte("a\nb\nc\n")
	after := []byte("a\nB\nc\n")
	diff, err := unifiedDiff(before, after, "old", "new")
	if err != nil {
		t.Fatalf("unifiedDiff: %v", err)
	}
	if !strings.Contains(diff, "-b") || !strings.Contains(diff, "+B") {
		t.Errorf("diff missing change lines:\n%s", diff)
	}

	same, err := unifiedDiff(before, before, "old", "new")
	if err != nil {
		t.Fatalf("unifiedDiff: %v", err)
	}
	if strings.TrimSpace(same) != "" {
		t.Errorf("identical inputs should yield empty diff, got:\n%s", same)
	}
}
