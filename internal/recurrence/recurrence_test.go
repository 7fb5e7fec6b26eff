package recurrence

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		input string
		want  Pattern
		ok    bool
	}{
		{"DAILY", Daily, true},
		{"WEEKLY", Weekly, true},
		{"MONTHLY", Monthly, true},
		{"YEARLY", Yearly, true},
		{"daily", Daily, true},
		{"  Weekly  ", Weekly, true},
		{"FORTNIGHTLY", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParsePattern(tt.input)
		if ok != tt.ok {
			t.Errorf("ParsePattern(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParsePattern(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAdvanceRecognizedPatterns(t *testing.T) {
	today := date(2025, time.June, 1)

	tests := []struct {
		name    string
		due     time.Time
		pattern string
		want    time.Time
	}{
		{"daily", date(2025, time.January, 10), "DAILY", date(2025, time.January, 11)},
		{"weekly", date(2025, time.January, 10), "WEEKLY", date(2025, time.January, 17)},
		{"monthly", date(2025, time.January, 10), "MONTHLY", date(2025, time.February, 10)},
		{"yearly", date(2025, time.January, 10), "YEARLY", date(2026, time.January, 10)},
		{"lowercase", date(2025, time.January, 10), "weekly", date(2025, time.January, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := tt.due
			next, ok := Advance(&due, tt.pattern, today)
			if !ok {
				t.Fatalf("Advance(%q) ok = false, want true", tt.pattern)
			}
			if !next.Equal(tt.want) {
				t.Errorf("Advance(%q) = %v, want %v", tt.pattern, next, tt.want)
			}
		})
	}
}

func TestAdvanceMonthlyClampsDayOfMonth(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want time.Time
	}{
		{"jan 31 to feb 28", date(2025, time.January, 31), date(2025, time.February, 28)},
		{"jan 31 leap year", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"dec rolls into next year", date(2025, time.December, 15), date(2026, time.January, 15)},
		{"may 31 to jun 30", date(2025, time.May, 31), date(2025, time.June, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := tt.due
			next, ok := Advance(&due, "MONTHLY", date(2025, time.June, 1))
			if !ok {
				t.Fatal("ok = false, want true")
			}
			if !next.Equal(tt.want) {
				t.Errorf("next = %v, want %v", next, tt.want)
			}
		})
	}
}

func TestAdvanceYearlyClampsLeapDay(t *testing.T) {
	due := date(2024, time.February, 29)
	next, ok := Advance(&due, "YEARLY", date(2024, time.March, 1))
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if want := date(2025, time.February, 28); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestAdvanceNilDueDateUsesToday(t *testing.T) {
	today := date(2025, time.March, 10)

	next, ok := Advance(nil, "WEEKLY", today)
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if want := date(2025, time.March, 17); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestAdvanceUnrecognizedPatternFallsBackToDaily(t *testing.T) {
	// Falls back to +1 day from the original due date, not from today.
	due := date(2025, time.March, 1)
	next, ok := Advance(&due, "FORTNIGHTLY", date(2025, time.June, 15))
	if ok {
		t.Fatal("ok = true, want false for unrecognized pattern")
	}
	if want := date(2025, time.March, 2); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestAdvanceUnrecognizedPatternNilDueDate(t *testing.T) {
	today := date(2025, time.June, 15)
	next, ok := Advance(nil, "", today)
	if ok {
		t.Fatal("ok = true, want false for empty pattern")
	}
	if want := date(2025, time.June, 16); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestAdvanceStripsTimeOfDay(t *testing.T) {
	due := time.Date(2025, time.January, 10, 14, 30, 0, 0, time.UTC)
	next, ok := Advance(&due, "DAILY", date(2025, time.June, 1))
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if want := date(2025, time.January, 11); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}
