package invest

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"15-01-2025", Date{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("Parse(%q) error = %v, want error %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDate_AddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   Date
	}{
		{"simple", "2025-01-15", 1, NewDate(2025, time.February, 15)},
		{"across year end", "2025-11-15", 3, NewDate(2026, time.February, 15)},
		{"normalized like time.Date", "2025-01-31", 1, NewDate(2025, time.March, 3)},
		{"zero months", "2025-06-10", 0, NewDate(2025, time.June, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParse(tc.start).AddMonths(tc.months)
			if got != tc.want {
				t.Errorf("AddMonths(%d) = %s, want %s", tc.months, got, tc.want)
			}
		})
	}
}

func TestDate_MonthsUntil(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"same day", "2025-03-15", "2025-03-15", 0},
		{"exactly one month", "2025-03-15", "2025-04-15", 1},
		{"one day shy of a month", "2025-03-15", "2025-04-14", 1},
		{"a day past the month boundary carries", "2025-03-15", "2025-04-16", 2},
		{"one year", "2025-03-15", "2026-03-15", 12},
		{"target in the past", "2025-03-15", "2025-01-15", -2},
		{"earlier day in the same month", "2025-03-15", "2025-03-10", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParse(tc.from).MonthsUntil(MustParse(tc.to))
			if got != tc.want {
				t.Errorf("MonthsUntil(%s -> %s) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestNeverDate(t *testing.T) {
	// NeverDate must sort after any plausible target date
	if !NeverDate.After(NewDate(2200, time.January, 1)) {
		t.Errorf("NeverDate %s is not in the far future", NeverDate)
	}
}
