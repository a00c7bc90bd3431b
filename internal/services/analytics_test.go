package services

import (
	"testing"
	"time"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, time.August, 17, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{"week", time.Date(2024, time.August, 10, 14, 30, 0, 0, time.UTC)},
		{"month", time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{"quarter", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{"year", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"decade", time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{"", time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run("period "+tt.period, func(t *testing.T) {
			if got := PeriodStart(now, tt.period); !got.Equal(tt.want) {
				t.Errorf("PeriodStart(%q) = %s, want %s", tt.period, got, tt.want)
			}
		})
	}
}

func TestPeriodStart_QuarterBoundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		want  time.Month
	}{
		{time.January, time.January},
		{time.March, time.January},
		{time.April, time.April},
		{time.June, time.April},
		{time.September, time.July},
		{time.October, time.October},
		{time.December, time.October},
	}

	for _, tt := range tests {
		now := time.Date(2024, tt.month, 20, 0, 0, 0, 0, time.UTC)
		got := PeriodStart(now, "quarter")
		if got.Month() != tt.want || got.Day() != 1 {
			t.Errorf("quarter start for %s = %s, want first of %s", tt.month, got, tt.want)
		}
	}
}

func TestCanonicalPeriod(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"week", "week"},
		{"month", "month"},
		{"quarter", "quarter"},
		{"year", "year"},
		{"", "month"},
		{"fortnight", "month"},
	}

	for _, tt := range tests {
		if got := canonicalPeriod(tt.in); got != tt.want {
			t.Errorf("canonicalPeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRetentionRate(t *testing.T) {
	tests := []struct {
		name     string
		longTerm int
		total    int
		want     string
	}{
		{"empty collection", 0, 0, "0%"},
		{"no long-term employees", 0, 10, "0.0%"},
		{"everyone retained", 10, 10, "100.0%"},
		{"two thirds", 2, 3, "66.7%"},
		{"one decimal rounding", 1, 8, "12.5%"},
		{"small share", 1, 1000, "0.1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RetentionRate(tt.longTerm, tt.total); got != tt.want {
				t.Errorf("RetentionRate(%d, %d) = %q, want %q", tt.longTerm, tt.total, got, tt.want)
			}
		})
	}
}
