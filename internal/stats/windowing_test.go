package stats

import (
	"testing"
	"time"
)

func TestTrailingMonths(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	months := TrailingMonths(now, 12)
	if len(months) != 12 {
		t.Fatalf("TrailingMonths len = %d, want 12", len(months))
	}
	if got := MonthKey(months[0]); got != "2025-04" {
		t.Errorf("first month = %s, want 2025-04", got)
	}
	if got := MonthKey(months[11]); got != "2026-03" {
		t.Errorf("last month = %s, want 2026-03", got)
	}
	if TrailingMonths(now, 0) != nil {
		t.Error("TrailingMonths(0) should be nil")
	}
}

func TestMonthBounds(t *testing.T) {
	d := time.Date(2026, time.February, 14, 13, 45, 0, 0, time.UTC)
	if got := MonthStart(d); got.Day() != 1 || got.Hour() != 0 {
		t.Errorf("MonthStart = %v", got)
	}
	if got := MonthEnd(d); got.Day() != 28 || got.Month() != time.February {
		t.Errorf("MonthEnd = %v", got)
	}
}

func TestFilterByPeriod(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		{ParsedDate: jan},
		{ParsedDate: feb},
		{}, // undated
	}

	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	bounded := FilterByPeriod(sessions, Period{Start: &start})
	if len(bounded) != 1 {
		t.Errorf("bounded filter len = %d, want 1", len(bounded))
	}

	// A fully unbounded period passes everything through, dated or not.
	unbounded := FilterByPeriod(sessions, Period{})
	if len(unbounded) != 3 {
		t.Errorf("unbounded filter len = %d, want 3", len(unbounded))
	}
}

func TestMonthlySeriesZeroFills(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		{ParsedDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), Children: 8, VolunteerCount: 2, Hours: 2},
		{ParsedDate: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), Children: 6, VolunteerCount: 3, Hours: 2},
		{ParsedDate: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), Children: 5, VolunteerCount: 1, Hours: 3},
	}

	series := MonthlySeries(sessions, now, 12)
	if len(series) != 12 {
		t.Fatalf("series len = %d, want 12", len(series))
	}

	last := series[11]
	if last.Month != "2026-03" || last.Sessions != 2 || last.Children != 14 {
		t.Errorf("current month stat = %+v", last)
	}

	empty := 0
	for _, m := range series {
		if m.Sessions == 0 {
			empty++
		}
	}
	if empty != 10 {
		t.Errorf("zero-filled months = %d, want 10", empty)
	}
}
