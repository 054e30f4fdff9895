package stats

import (
	"sort"
	"time"
)

const (
	topVolunteerLimit  = 15
	leaderboardLimit   = 10
	trendMonths        = 12
	rankingMonths      = 6
	retentionWindowMos = 6
)

// Aggregate turns a snapshot of volunteers and sessions into the full
// statistics bundle. The function is pure and total: it never fails for empty
// or malformed collections, and every sub-aggregate degrades to an
// empty or zero default. The caller supplies the reference instant so results
// are reproducible.
func Aggregate(volunteers []Volunteer, sessions []Session, filters Filters, cal SchoolCalendar, now time.Time) StatisticsBundle {
	// 1. Raw counts come from the unfiltered collection; everything after
	// this point works on active sessions only.
	counts := CountByStatus(sessions)
	active := FilterByStatus(sessions, ModeActive)

	// 2. Apply date/location filters to sessions, school filter to volunteers.
	filteredSessions := applySessionFilters(active, filters)
	filteredVolunteers := applySchoolFilter(volunteers, filters.Schools)

	// 3. Independent sub-aggregates over the filtered sets.
	breakdown := activityBreakdown(filteredVolunteers, filteredSessions, now)
	summary := buildSummary(filteredVolunteers, filteredSessions, breakdown)
	byLocation := groupByLocation(filteredSessions)
	top := topVolunteers(filteredVolunteers)

	return StatisticsBundle{
		SessionCounts:     counts,
		Summary:           summary,
		ByLocation:        byLocation,
		BySchool:          groupBySchool(filteredVolunteers),
		ByMonth:           groupByMonth(filteredSessions),
		ByGrade:           groupByGrade(filteredVolunteers),
		TopVolunteers:     top,
		ActivityBreakdown: breakdown,
		Trend:             MonthlySeries(filteredSessions, now, trendMonths),
		Heatmap:           buildHeatmap(filteredSessions),
		Retention:         retentionRate(filteredSessions, now),
		Durations:         durationStats(filteredSessions),
		StackedByLocation: stackedByLocation(filteredSessions, now),
		RankingHistory:    rankingHistory(filteredVolunteers, filteredSessions, now),
		Leaderboards:      buildLeaderboards(filteredVolunteers, filteredSessions, now),
		Insights:          GenerateInsights(filteredSessions, summary, byLocation, top, cal, now),
		Forecast:          ForecastSessions(filteredSessions, now),
		Anomalies:         DetectAnomalies(filteredSessions),
		Recommendations:   GenerateRecommendations(filteredVolunteers, filteredSessions, breakdown, cal, now),
	}
}

// NameIndex builds the name -> volunteer lookup used for string-keyed joins.
// Orphan names in session rosters simply miss the index; that is the
// documented "no referential integrity" behavior, not an error.
func NameIndex(volunteers []Volunteer) map[string]*Volunteer {
	idx := make(map[string]*Volunteer, len(volunteers))
	for i := range volunteers {
		idx[volunteers[i].Name] = &volunteers[i]
	}
	return idx
}

func applySessionFilters(sessions []Session, filters Filters) []Session {
	out := sessions

	if filters.DateRange != nil {
		p := Period{Start: &filters.DateRange.Start, End: &filters.DateRange.End}
		out = FilterByPeriod(out, p)
	} else if filters.Year != 0 {
		filtered := make([]Session, 0, len(out))
		for _, s := range out {
			if s.HasDate() && s.ParsedDate.Year() == filters.Year {
				filtered = append(filtered, s)
			}
		}
		out = filtered
	}

	if len(filters.Locations) > 0 {
		allowed := make(map[string]bool, len(filters.Locations))
		for _, l := range filters.Locations {
			allowed[l] = true
		}
		filtered := make([]Session, 0, len(out))
		for _, s := range out {
			if allowed[s.Location] {
				filtered = append(filtered, s)
			}
		}
		out = filtered
	}

	return out
}

func applySchoolFilter(volunteers []Volunteer, schools []string) []Volunteer {
	if len(schools) == 0 {
		return volunteers
	}
	allowed := make(map[string]bool, len(schools))
	for _, s := range schools {
		allowed[s] = true
	}
	out := make([]Volunteer, 0, len(volunteers))
	for _, v := range volunteers {
		if allowed[v.School] {
			out = append(out, v)
		}
	}
	return out
}

func buildSummary(volunteers []Volunteer, sessions []Session, breakdown ActivityBreakdown) Summary {
	summary := Summary{
		TotalSessions:  len(sessions),
		VolunteerCount: len(volunteers),
	}

	// Averages divide by rows with a positive count so zero-activity rows
	// do not drag them down.
	childRows, volRows := 0, 0
	totalVolunteerSeats := 0
	for _, s := range sessions {
		summary.TotalChildren += s.Children
		summary.TotalHours += s.Hours
		if s.Children > 0 {
			childRows++
		}
		if s.VolunteerCount > 0 {
			volRows++
			totalVolunteerSeats += s.VolunteerCount
		}
	}
	if childRows > 0 {
		summary.AvgChildren = Round1(float64(summary.TotalChildren) / float64(childRows))
	}
	if volRows > 0 {
		summary.AvgVolunteers = Round1(float64(totalVolunteerSeats) / float64(volRows))
	}
	summary.TotalHours = Round1(summary.TotalHours)

	if len(volunteers) > 0 {
		summary.ActiveVolunteerPct = Round1(float64(breakdown.Active) / float64(len(volunteers)) * 100)
	}
	return summary
}

func activityBreakdown(volunteers []Volunteer, sessions []Session, now time.Time) ActivityBreakdown {
	var breakdown ActivityBreakdown
	for i := range volunteers {
		switch Classify(&volunteers[i], sessions, now).Status {
		case StatusActive:
			breakdown.Active++
		case StatusDormant:
			breakdown.Dormant++
		default:
			breakdown.Inactive++
		}
	}
	return breakdown
}

func groupByLocation(sessions []Session) []LocationStat {
	groups := make(map[string]*LocationStat)
	for _, s := range sessions {
		location := s.Location
		if location == "" {
			location = "Unknown"
		}
		g, ok := groups[location]
		if !ok {
			g = &LocationStat{Location: location}
			groups[location] = g
		}
		g.Sessions++
		g.Children += s.Children
		g.Volunteers += s.VolunteerCount
		g.Hours += s.Hours
	}

	out := make([]LocationStat, 0, len(groups))
	for _, g := range groups {
		g.Hours = Round1(g.Hours)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sessions != out[j].Sessions {
			return out[i].Sessions > out[j].Sessions
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func groupBySchool(volunteers []Volunteer) []SchoolStat {
	groups := make(map[string]*SchoolStat)
	for _, v := range volunteers {
		school := v.School
		if school == "" {
			school = "Unknown"
		}
		g, ok := groups[school]
		if !ok {
			g = &SchoolStat{School: school}
			groups[school] = g
		}
		g.Volunteers++
		g.Hours += v.Hours
	}

	out := make([]SchoolStat, 0, len(groups))
	for _, g := range groups {
		g.Hours = Round1(g.Hours)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volunteers != out[j].Volunteers {
			return out[i].Volunteers > out[j].Volunteers
		}
		return out[i].School < out[j].School
	})
	return out
}

func groupByGrade(volunteers []Volunteer) []GradeStat {
	groups := make(map[string]*GradeStat)
	for _, v := range volunteers {
		grade := v.Grade
		if grade == "" {
			grade = "Unknown"
		}
		g, ok := groups[grade]
		if !ok {
			g = &GradeStat{Grade: grade}
			groups[grade] = g
		}
		g.Volunteers++
		g.Hours += v.Hours
	}

	out := make([]GradeStat, 0, len(groups))
	for _, g := range groups {
		g.Hours = Round1(g.Hours)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Grade < out[j].Grade
	})
	return out
}

// groupByMonth returns only months that actually have data, chronological.
// The zero-filled fixed-length view lives in the Trend series.
func groupByMonth(sessions []Session) []MonthStat {
	buckets := BucketByMonth(sessions)
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthStat, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, MonthStat{
			Month:      k,
			Label:      MonthLabel(b.Anchor),
			Sessions:   b.Sessions,
			Children:   b.Children,
			Volunteers: b.Volunteers,
			Hours:      Round1(b.Hours),
		})
	}
	return out
}

func topVolunteers(volunteers []Volunteer) []VolunteerRank {
	ranked := make([]VolunteerRank, 0, len(volunteers))
	for _, v := range volunteers {
		ranked = append(ranked, VolunteerRank{Name: v.Name, School: v.School, Hours: Round1(v.Hours)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Hours != ranked[j].Hours {
			return ranked[i].Hours > ranked[j].Hours
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topVolunteerLimit {
		ranked = ranked[:topVolunteerLimit]
	}
	return ranked
}

func buildHeatmap(sessions []Session) map[string]HeatCell {
	heatmap := make(map[string]HeatCell)
	for _, s := range sessions {
		if s.Date == "" {
			continue
		}
		cell := heatmap[s.Date]
		cell.Sessions++
		cell.Children += s.Children
		cell.Volunteers += s.VolunteerCount
		heatmap[s.Date] = cell
	}
	return heatmap
}

// retentionRate compares the roster seen 7-12 months back against the roster
// seen in the last 6 months. An empty cohort yields rate 0, not an error.
func retentionRate(sessions []Session, now time.Time) Retention {
	recentStart := now.AddDate(0, -retentionWindowMos, 0)
	cohortStart := now.AddDate(0, -2*retentionWindowMos, 0)

	cohort := make(map[string]bool)
	recent := make(map[string]bool)
	for _, s := range sessions {
		if !s.HasDate() || s.ParsedDate.After(now) {
			continue
		}
		for _, name := range s.Volunteers {
			switch {
			case s.ParsedDate.Before(cohortStart):
			case s.ParsedDate.Before(recentStart):
				cohort[name] = true
			default:
				recent[name] = true
			}
		}
	}

	result := Retention{CohortSize: len(cohort)}
	for name := range cohort {
		if recent[name] {
			result.Retained++
		}
	}
	if result.CohortSize > 0 {
		result.Rate = Round2(float64(result.Retained) / float64(result.CohortSize))
	}
	return result
}

func durationStats(sessions []Session) DurationStats {
	if len(sessions) == 0 {
		return DurationStats{}
	}

	stats := DurationStats{Min: sessions[0].Hours, Max: sessions[0].Hours}
	for _, s := range sessions {
		h := s.Hours
		if h <= 0 {
			h = defaultSessionHours
		}
		stats.Total += h
		if h < stats.Min || stats.Min <= 0 {
			stats.Min = h
		}
		if h > stats.Max {
			stats.Max = h
		}
	}
	stats.Avg = Round1(stats.Total / float64(len(sessions)))
	stats.Total = Round1(stats.Total)
	return stats
}

func stackedByLocation(sessions []Session, now time.Time) []StackedMonth {
	buckets := make(map[string]map[string]int)
	for _, s := range sessions {
		if !s.HasDate() {
			continue
		}
		key := MonthKey(s.ParsedDate)
		if buckets[key] == nil {
			buckets[key] = make(map[string]int)
		}
		location := s.Location
		if location == "" {
			location = "Unknown"
		}
		buckets[key][location]++
	}

	out := make([]StackedMonth, 0, trendMonths)
	for _, anchor := range TrailingMonths(now, trendMonths) {
		month := StackedMonth{
			Month:      MonthKey(anchor),
			Label:      MonthLabel(anchor),
			ByLocation: map[string]int{},
		}
		if b, ok := buckets[month.Month]; ok {
			month.ByLocation = b
		}
		out = append(out, month)
	}
	return out
}

// rankingHistory reconstructs the top-10 standings by cumulative session
// hours as of each of the last six month ends. The lifetime Hours field
// cannot be rewound, so standings are rebuilt from session participation.
func rankingHistory(volunteers []Volunteer, sessions []Session, now time.Time) []RankingSnapshot {
	idx := NameIndex(volunteers)

	out := make([]RankingSnapshot, 0, rankingMonths)
	for _, anchor := range TrailingMonths(now, rankingMonths) {
		end := MonthEnd(anchor)
		totals := make(map[string]float64)
		for _, s := range sessions {
			if !s.HasDate() || s.ParsedDate.After(end) {
				continue
			}
			for _, name := range s.Volunteers {
				totals[name] += s.Hours
			}
		}
		out = append(out, RankingSnapshot{
			Month: MonthKey(anchor),
			Label: MonthLabel(anchor),
			Top:   rankTotals(totals, idx, leaderboardLimit),
		})
	}
	return out
}

func buildLeaderboards(volunteers []Volunteer, sessions []Session, now time.Time) Leaderboards {
	idx := NameIndex(volunteers)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := MonthStart(now)

	weekly := make(map[string]float64)
	monthly := make(map[string]float64)
	for _, s := range sessions {
		if !s.HasDate() || s.ParsedDate.After(now) {
			continue
		}
		for _, name := range s.Volunteers {
			if s.ParsedDate.After(weekStart) {
				weekly[name] += s.Hours
			}
			if !s.ParsedDate.Before(monthStart) {
				monthly[name] += s.Hours
			}
		}
	}

	return Leaderboards{
		Weekly:  rankTotals(weekly, idx, leaderboardLimit),
		Monthly: rankTotals(monthly, idx, leaderboardLimit),
	}
}

func rankTotals(totals map[string]float64, idx map[string]*Volunteer, limit int) []VolunteerRank {
	ranked := make([]VolunteerRank, 0, len(totals))
	for name, hours := range totals {
		rank := VolunteerRank{Name: name, Hours: Round1(hours)}
		if v, ok := idx[name]; ok {
			rank.School = v.School
		}
		ranked = append(ranked, rank)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Hours != ranked[j].Hours {
			return ranked[i].Hours > ranked[j].Hours
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
