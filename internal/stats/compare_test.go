package stats

import (
	"testing"
	"time"
)

func comparePeriod(start, end time.Time, label string) Period {
	return Period{Start: &start, End: &end, Label: label}
}

func compareFixture() ([]Volunteer, []Session, Period, Period) {
	volunteers := []Volunteer{
		{Name: "Ana", School: "Gimnazija", Hours: 40},
		{Name: "Ivan", School: "Gimnazija", Hours: 25},
		{Name: "Luka", School: "Ekonomska", Hours: 10},
	}
	at := func(t time.Time, location string, children, seats int, names []string) Session {
		return Session{
			Date:           t.Format("2006-01-02"),
			ParsedDate:     t,
			Location:       location,
			Children:       children,
			VolunteerCount: seats,
			Volunteers:     names,
			Hours:          2,
		}
	}
	sessions := []Session{
		at(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), "Dugave", 8, 2, []string{"Ana", "Luka"}),
		at(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), "Sopot", 6, 1, []string{"Luka"}),
		at(time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), "Dugave", 12, 2, []string{"Ana", "Ivan"}),
		at(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), "Dugave", 10, 2, []string{"Ana", "Ivan"}),
		at(time.Date(2026, time.February, 17, 0, 0, 0, 0, time.UTC), "Sopot", 9, 1, []string{"Ana"}),
		// Cancelled mid-February; must not count for either side.
		{Date: "2026-02-20", ParsedDate: time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)},
	}
	p1 := comparePeriod(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
		"January",
	)
	p2 := comparePeriod(
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		"February",
	)
	return volunteers, sessions, p1, p2
}

func TestComparePeriodStats(t *testing.T) {
	volunteers, sessions, p1, p2 := compareFixture()

	result := Compare(volunteers, sessions, p1, p2)

	s1 := result.Period1.Stats
	if s1.Sessions != 2 || s1.Children != 14 || s1.Volunteers != 3 || s1.UniqueVolunteers != 2 {
		t.Errorf("period1 stats = %+v", s1)
	}
	if s1.TotalHours != 4 {
		t.Errorf("period1 hours = %v, want 4", s1.TotalHours)
	}

	s2 := result.Period2.Stats
	if s2.Sessions != 3 || s2.Children != 31 || s2.UniqueVolunteers != 2 {
		t.Errorf("period2 stats = %+v", s2)
	}

	if result.Period1.Label != "January" || result.Period2.Label != "February" {
		t.Errorf("labels = %q / %q", result.Period1.Label, result.Period2.Label)
	}
}

func TestCompareWinnersAndChanges(t *testing.T) {
	volunteers, sessions, p1, p2 := compareFixture()

	result := Compare(volunteers, sessions, p1, p2)

	if result.Changes.Sessions != 50 {
		t.Errorf("Changes.Sessions = %d, want 50", result.Changes.Sessions)
	}
	if result.Changes.Children != 121 {
		t.Errorf("Changes.Children = %d, want 121", result.Changes.Children)
	}
	if result.Winners.Sessions != 2 || result.Winners.Children != 2 {
		t.Errorf("Winners = %+v", result.Winners)
	}
	// Both periods saw exactly two distinct names.
	if result.Winners.UniqueVolunteers != 0 {
		t.Errorf("Winners.UniqueVolunteers = %d, want 0 (tie)", result.Winners.UniqueVolunteers)
	}
	if result.OverallWinner != 2 {
		t.Errorf("OverallWinner = %d, want 2", result.OverallWinner)
	}
}

func TestCompareSwappedPeriodsFlipWinner(t *testing.T) {
	volunteers, sessions, p1, p2 := compareFixture()

	result := Compare(volunteers, sessions, p2, p1)
	if result.OverallWinner != 1 {
		t.Errorf("OverallWinner = %d, want 1", result.OverallWinner)
	}
	if result.Changes.Sessions != -33 {
		t.Errorf("Changes.Sessions = %d, want -33", result.Changes.Sessions)
	}
}

func TestCompareIdenticalPeriods(t *testing.T) {
	volunteers, sessions, p1, _ := compareFixture()

	result := Compare(volunteers, sessions, p1, p1)

	if result.Changes != (Changes{}) {
		t.Errorf("Changes = %+v, want all zero", result.Changes)
	}
	if result.Winners != (Winners{}) {
		t.Errorf("Winners = %+v, want all ties", result.Winners)
	}
	if result.OverallWinner != 0 {
		t.Errorf("OverallWinner = %d, want 0", result.OverallWinner)
	}
	if len(result.TopImprovers) != 0 || len(result.TopDecliners) != 0 {
		t.Errorf("movers over identical periods = %+v / %+v", result.TopImprovers, result.TopDecliners)
	}
	if len(result.Insights) != 0 {
		t.Errorf("insights over identical periods = %+v", result.Insights)
	}
}

func TestCompareMovers(t *testing.T) {
	volunteers, sessions, p1, p2 := compareFixture()

	result := Compare(volunteers, sessions, p1, p2)

	// Ana 2h -> 6h, Ivan 0h -> 4h, Luka 4h -> 0h.
	if len(result.Volunteers) != 3 {
		t.Fatalf("volunteer deltas = %+v", result.Volunteers)
	}
	if result.Volunteers[0].Name != "Ana" || result.Volunteers[0].Change != 200 {
		t.Errorf("top delta = %+v", result.Volunteers[0])
	}
	if len(result.TopImprovers) != 2 || result.TopImprovers[0].Name != "Ana" {
		t.Errorf("TopImprovers = %+v", result.TopImprovers)
	}
	if len(result.TopDecliners) != 1 || result.TopDecliners[0].Name != "Luka" || result.TopDecliners[0].Change != -100 {
		t.Errorf("TopDecliners = %+v", result.TopDecliners)
	}
}

func TestCompareLocationDeltas(t *testing.T) {
	volunteers, sessions, p1, p2 := compareFixture()

	result := Compare(volunteers, sessions, p1, p2)

	if len(result.Locations) != 2 {
		t.Fatalf("location deltas = %+v", result.Locations)
	}
	// Dugave moved 8 -> 22 children (175%), Sopot 6 -> 9 (50%).
	if result.Locations[0].Location != "Dugave" || result.Locations[0].Change != 175 {
		t.Errorf("biggest mover = %+v", result.Locations[0])
	}
}

func TestCompareInsights(t *testing.T) {
	volunteers, sessions, p1, p2 := compareFixture()

	result := Compare(volunteers, sessions, p1, p2)

	if len(result.Insights) != 2 {
		t.Fatalf("insights = %+v", result.Insights)
	}
	for _, i := range result.Insights {
		if i.Type != "positive" {
			t.Errorf("insight type = %q, want positive: %+v", i.Type, i)
		}
	}
}

func TestCompareEmptyPeriod(t *testing.T) {
	volunteers, sessions, p1, _ := compareFixture()
	empty := comparePeriod(
		time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC),
		"Empty",
	)

	result := Compare(volunteers, sessions, p1, empty)

	if result.Period2.Stats != (PeriodStats{}) {
		t.Errorf("empty period stats = %+v", result.Period2.Stats)
	}
	if result.OverallWinner != 1 {
		t.Errorf("OverallWinner = %d, want 1", result.OverallWinner)
	}
	if result.Changes.Sessions != -100 {
		t.Errorf("Changes.Sessions = %d, want -100", result.Changes.Sessions)
	}
}

func TestCompareDefaultLabels(t *testing.T) {
	_, sessions, p1, p2 := compareFixture()
	p1.Label, p2.Label = "", ""

	result := Compare(nil, sessions, p1, p2)
	if result.Period1.Label != "Period 1" || result.Period2.Label != "Period 2" {
		t.Errorf("labels = %q / %q", result.Period1.Label, result.Period2.Label)
	}
}
