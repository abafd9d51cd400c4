package tracker

import (
	"testing"
	"time"

	"github.com/julianstephens/habitcards/internal/models"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"jan 1 2024 (monday)", date(2024, time.January, 1, 0, 0), "2024-W1"},
		{"saturday of first week", date(2024, time.January, 6, 12, 0), "2024-W1"},
		{"first sunday starts week 2", date(2024, time.January, 7, 0, 0), "2024-W2"},
		{"jan 1 2023 (sunday)", date(2023, time.January, 1, 0, 0), "2023-W1"},
		{"jan 7 2023 (saturday)", date(2023, time.January, 7, 0, 0), "2023-W1"},
		{"jan 8 2023 (sunday)", date(2023, time.January, 8, 0, 0), "2023-W2"},
		{"dec 31 2023 (sunday)", date(2023, time.December, 31, 0, 0), "2023-W53"},
		{"dec 31 2024 (tuesday)", date(2024, time.December, 31, 0, 0), "2024-W53"},
		{"leap day", date(2024, time.February, 29, 0, 0), "2024-W9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekKey(tt.t); got != tt.want {
				t.Errorf("WeekKey(%s) = %q, want %q", tt.t.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestDayAndMonthKeys(t *testing.T) {
	ts := date(2024, time.September, 5, 23, 59)
	if got := DayKey(ts); got != "2024-09-05" {
		t.Errorf("DayKey() = %q", got)
	}
	if got := MonthKey(ts); got != "2024-9" {
		t.Errorf("MonthKey() = %q", got)
	}
	if got := MonthKey(date(2023, time.December, 1, 0, 0)); got != "2023-12" {
		t.Errorf("MonthKey() = %q", got)
	}
}

func TestAdvances(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		current string
		parse   func(string) (period, bool)
		want    bool
	}{
		{"unset day", "", "2024-01-01", parseDayKey, true},
		{"same day", "2024-01-01", "2024-01-01", parseDayKey, false},
		{"next day", "2024-01-01", "2024-01-02", parseDayKey, true},
		{"previous day", "2024-01-02", "2024-01-01", parseDayKey, false},
		{"next year week", "2023-W53", "2024-W1", parseWeekKey, true},
		{"earlier week", "2024-W10", "2024-W9", parseWeekKey, false},
		{"double digit month", "2024-9", "2024-10", parseMonthKey, true},
		{"earlier month", "2024-10", "2024-9", parseMonthKey, false},
		{"unreadable month", "2024-13", "2024-1", parseMonthKey, true},
		{"unreadable week", "2024W1", "2024-W2", parseWeekKey, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := advances(tt.stored, tt.current, tt.parse); got != tt.want {
				t.Errorf("advances(%q, %q) = %v, want %v", tt.stored, tt.current, got, tt.want)
			}
		})
	}
}

func TestValidMarker(t *testing.T) {
	tests := []struct {
		freq models.Frequency
		key  string
		want bool
	}{
		{models.FrequencyDaily, "", true},
		{models.FrequencyDaily, "2024-01-02", true},
		{models.FrequencyDaily, "2024-1-2", false},
		{models.FrequencyWeekly, "2024-W1", true},
		{models.FrequencyWeekly, "2024-01", false},
		{models.FrequencyWeekly, "2024-W54", true},
		{models.FrequencyWeekly, "2024-W0", false},
		{models.FrequencyWeekly, "2024-W99", false},
		{models.FrequencyMonthly, "2024-12", true},
		{models.FrequencyMonthly, "2024-13", false},
		{models.Frequency("Yearly"), "2024", false},
	}

	for _, tt := range tests {
		if got := ValidMarker(tt.freq, tt.key); got != tt.want {
			t.Errorf("ValidMarker(%s, %q) = %v, want %v", tt.freq, tt.key, got, tt.want)
		}
	}
}

func TestFutureMarker(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		freq models.Frequency
		key  string
		want bool
	}{
		{models.FrequencyDaily, "2099-01-01", true},
		{models.FrequencyDaily, "2024-01-03", true},
		{models.FrequencyDaily, "2024-01-02", false},
		{models.FrequencyDaily, "2023-12-31", false},
		{models.FrequencyDaily, "", false},
		{models.FrequencyDaily, "garbage", false},
		{models.FrequencyWeekly, "2024-W1", false},
		{models.FrequencyWeekly, "2024-W2", true},
		{models.FrequencyMonthly, "2024-1", false},
		{models.FrequencyMonthly, "2025-1", true},
	}

	for _, tt := range tests {
		if got := FutureMarker(tt.freq, tt.key, now); got != tt.want {
			t.Errorf("FutureMarker(%s, %q) = %v, want %v", tt.freq, tt.key, got, tt.want)
		}
	}
}

func TestImpossibleWeekMarkerIsReplaced(t *testing.T) {
	if !advances("2024-W99", "2024-W3", parseWeekKey) {
		t.Error("an out of range week marker should be treated as unset")
	}
}
