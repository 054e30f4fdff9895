package stats

import (
	"fmt"
	"sort"
)

const (
	compareSessionsInsightPct = 20
	compareChildrenInsightPct = 15
	moverLimit                = 3
)

// Compare computes side-by-side statistics for two arbitrary periods over the
// same snapshot. Cancelled sessions are stripped once, globally, before
// slicing. Periods with no overlapping sessions yield zeroed stats, not an
// error.
func Compare(volunteers []Volunteer, sessions []Session, p1, p2 Period) ComparisonResult {
	active := FilterByStatus(sessions, ModeActive)

	slice1 := FilterByPeriod(active, p1)
	slice2 := FilterByPeriod(active, p2)

	stats1 := periodStats(slice1)
	stats2 := periodStats(slice2)

	result := ComparisonResult{
		Period1: PeriodSide{Label: periodLabel(p1, "Period 1"), Stats: stats1},
		Period2: PeriodSide{Label: periodLabel(p2, "Period 2"), Stats: stats2},
		Changes: Changes{
			Sessions:         PercentChange(float64(stats2.Sessions), float64(stats1.Sessions)),
			Children:         PercentChange(float64(stats2.Children), float64(stats1.Children)),
			Volunteers:       PercentChange(float64(stats2.Volunteers), float64(stats1.Volunteers)),
			UniqueVolunteers: PercentChange(float64(stats2.UniqueVolunteers), float64(stats1.UniqueVolunteers)),
			AvgChildren:      PercentChange(stats2.AvgChildren, stats1.AvgChildren),
			AvgRatio:         PercentChange(stats2.AvgRatio, stats1.AvgRatio),
			TotalHours:       PercentChange(stats2.TotalHours, stats1.TotalHours),
		},
	}

	result.Winners = Winners{
		Sessions:         metricWinner(float64(stats1.Sessions), float64(stats2.Sessions)),
		Children:         metricWinner(float64(stats1.Children), float64(stats2.Children)),
		Volunteers:       metricWinner(float64(stats1.Volunteers), float64(stats2.Volunteers)),
		UniqueVolunteers: metricWinner(float64(stats1.UniqueVolunteers), float64(stats2.UniqueVolunteers)),
		AvgChildren:      metricWinner(stats1.AvgChildren, stats2.AvgChildren),
		AvgRatio:         metricWinner(stats1.AvgRatio, stats2.AvgRatio),
	}
	result.OverallWinner = overallWinner(result.Winners)

	result.Locations = locationDeltas(slice1, slice2)
	result.Volunteers = volunteerDeltas(slice1, slice2)
	result.TopImprovers, result.TopDecliners = movers(result.Volunteers)
	result.Insights = comparisonInsights(result)

	_ = volunteers // roster attributes are not needed for period deltas; kept for API symmetry

	return result
}

func periodLabel(p Period, fallback string) string {
	if p.Label != "" {
		return p.Label
	}
	return fallback
}

func periodStats(sessions []Session) PeriodStats {
	stats := PeriodStats{Sessions: len(sessions)}

	unique := make(map[string]bool)
	childRows, volRows, ratioRows := 0, 0, 0
	ratioSum := 0.0
	for _, s := range sessions {
		stats.Children += s.Children
		stats.Volunteers += s.VolunteerCount
		stats.TotalHours += s.Hours
		for _, name := range s.Volunteers {
			unique[name] = true
		}
		if s.Children > 0 {
			childRows++
		}
		if s.VolunteerCount > 0 {
			volRows++
		}
		if s.Children > 0 && s.VolunteerCount > 0 {
			ratioSum += float64(s.Children) / float64(s.VolunteerCount)
			ratioRows++
		}
	}

	stats.UniqueVolunteers = len(unique)
	if childRows > 0 {
		stats.AvgChildren = Round1(float64(stats.Children) / float64(childRows))
	}
	if volRows > 0 {
		stats.AvgVolunteers = Round1(float64(stats.Volunteers) / float64(volRows))
	}
	if ratioRows > 0 {
		stats.AvgRatio = Round1(ratioSum / float64(ratioRows))
	}
	stats.TotalHours = Round1(stats.TotalHours)
	return stats
}

// metricWinner returns 1 or 2 for the period with the strictly larger value,
// 0 for a tie.
func metricWinner(v1, v2 float64) int {
	switch {
	case v1 > v2:
		return 1
	case v2 > v1:
		return 2
	default:
		return 0
	}
}

func overallWinner(w Winners) int {
	wins1, wins2 := 0, 0
	for _, winner := range []int{w.Sessions, w.Children, w.Volunteers, w.UniqueVolunteers, w.AvgChildren, w.AvgRatio} {
		switch winner {
		case 1:
			wins1++
		case 2:
			wins2++
		}
	}
	switch {
	case wins1 > wins2:
		return 1
	case wins2 > wins1:
		return 2
	default:
		return 0
	}
}

// locationDeltas diffs per-location children counts, biggest movement first.
func locationDeltas(slice1, slice2 []Session) []LocationDelta {
	children1 := make(map[string]int)
	children2 := make(map[string]int)
	for _, s := range slice1 {
		if s.Location != "" {
			children1[s.Location] += s.Children
		}
	}
	for _, s := range slice2 {
		if s.Location != "" {
			children2[s.Location] += s.Children
		}
	}

	seen := make(map[string]bool)
	var deltas []LocationDelta
	appendLocation := func(location string) {
		if seen[location] {
			return
		}
		seen[location] = true
		c1, c2 := children1[location], children2[location]
		deltas = append(deltas, LocationDelta{
			Location:  location,
			Children1: c1,
			Children2: c2,
			Change:    PercentChange(float64(c2), float64(c1)),
		})
	}
	for location := range children1 {
		appendLocation(location)
	}
	for location := range children2 {
		appendLocation(location)
	}

	sort.Slice(deltas, func(i, j int) bool {
		ai, aj := abs(deltas[i].Change), abs(deltas[j].Change)
		if ai != aj {
			return ai > aj
		}
		return deltas[i].Location < deltas[j].Location
	})
	return deltas
}

// volunteerDeltas diffs per-volunteer session hours, top improvers first.
func volunteerDeltas(slice1, slice2 []Session) []VolunteerDelta {
	hours1 := make(map[string]float64)
	hours2 := make(map[string]float64)
	for _, s := range slice1 {
		for _, name := range s.Volunteers {
			hours1[name] += s.Hours
		}
	}
	for _, s := range slice2 {
		for _, name := range s.Volunteers {
			hours2[name] += s.Hours
		}
	}

	seen := make(map[string]bool)
	var deltas []VolunteerDelta
	appendName := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		h1, h2 := hours1[name], hours2[name]
		deltas = append(deltas, VolunteerDelta{
			Name:   name,
			Hours1: Round1(h1),
			Hours2: Round1(h2),
			Change: PercentChange(h2, h1),
		})
	}
	for name := range hours1 {
		appendName(name)
	}
	for name := range hours2 {
		appendName(name)
	}

	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Change != deltas[j].Change {
			return deltas[i].Change > deltas[j].Change
		}
		return deltas[i].Name < deltas[j].Name
	})
	return deltas
}

func movers(deltas []VolunteerDelta) (improvers, decliners []VolunteerDelta) {
	for _, d := range deltas {
		if d.Change > 0 && len(improvers) < moverLimit {
			improvers = append(improvers, d)
		}
	}
	for i := len(deltas) - 1; i >= 0; i-- {
		if deltas[i].Change < 0 && len(decliners) < moverLimit {
			decliners = append(decliners, deltas[i])
		}
	}
	return improvers, decliners
}

func comparisonInsights(result ComparisonResult) []Insight {
	var insights []Insight
	p1, p2 := result.Period1.Label, result.Period2.Label

	if change := result.Changes.Sessions; abs(change) >= compareSessionsInsightPct {
		insightType := "positive"
		direction := "more"
		if change < 0 {
			insightType = "negative"
			direction = "fewer"
		}
		insights = append(insights, Insight{
			Type:  insightType,
			Title: "Session volume shifted",
			Text:  fmt.Sprintf("%s had %d%% %s sessions than %s.", p2, abs(change), direction, p1),
		})
	}

	if change := result.Changes.Children; abs(change) >= compareChildrenInsightPct {
		insightType := "positive"
		direction := "more"
		if change < 0 {
			insightType = "negative"
			direction = "fewer"
		}
		insights = append(insights, Insight{
			Type:  insightType,
			Title: "Children reached shifted",
			Text:  fmt.Sprintf("%s reached %d%% %s children than %s.", p2, abs(change), direction, p1),
		})
	}

	return insights
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
