package stats

import (
	"fmt"
	"time"
)

// Insight rule thresholds.
const (
	momChangeThresholdPct  = 20
	activePctPositive      = 70.0
	activePctWarning       = 50.0
	ratioNeedsVolunteers   = 8.0
	dormantReactivateCount = 5
	schoolSharePct         = 40.0
	holidayLookaheadDays   = 14
)

// GenerateInsights runs the observation rule set over the aggregated numbers.
// Every rule decides independently; no rule can suppress another, with the
// single documented exception that holiday overlap silences the
// "activity dropped" warning.
func GenerateInsights(sessions []Session, summary Summary, byLocation []LocationStat, topVolunteers []VolunteerRank, cal SchoolCalendar, now time.Time) []Insight {
	var insights []Insight

	// Month-over-month session movement.
	buckets := BucketByMonth(sessions)
	currAnchor := MonthStart(now)
	prevAnchor := currAnchor.AddDate(0, -1, 0)
	curr, prev := 0, 0
	if b, ok := buckets[MonthKey(currAnchor)]; ok {
		curr = b.Sessions
	}
	if b, ok := buckets[MonthKey(prevAnchor)]; ok {
		prev = b.Sessions
	}
	change := PercentChange(float64(curr), float64(prev))
	if change >= momChangeThresholdPct && curr > 0 {
		insights = append(insights, Insight{
			Type:  "positive",
			Title: "Sessions are picking up",
			Text:  fmt.Sprintf("%s has %d sessions so far, up %d%% from %s.", MonthLabel(currAnchor), curr, change, MonthLabel(prevAnchor)),
		})
	} else if change <= -momChangeThresholdPct && prev > 0 {
		// A drop across a holiday period is expected, not a signal.
		_, prevOverHoliday := cal.HolidayOverlapping(prevAnchor, MonthEnd(prevAnchor))
		_, currOverHoliday := cal.HolidayOverlapping(currAnchor, MonthEnd(currAnchor))
		if !prevOverHoliday && !currOverHoliday {
			insights = append(insights, Insight{
				Type:  "negative",
				Title: "Session activity dropped",
				Text:  fmt.Sprintf("%s has %d sessions, down %d%% from %s.", MonthLabel(currAnchor), curr, -change, MonthLabel(prevAnchor)),
			})
		}
	}

	// Busiest location by children reached.
	if len(byLocation) > 0 {
		top := byLocation[0]
		for _, l := range byLocation[1:] {
			if l.Children > top.Children {
				top = l
			}
		}
		if top.Children > 0 {
			insights = append(insights, Insight{
				Type:  "info",
				Title: "Busiest location",
				Text:  fmt.Sprintf("%s reached %d children across %d sessions.", top.Location, top.Children, top.Sessions),
			})
		}
	}

	// Engagement health.
	if summary.VolunteerCount > 0 {
		if summary.ActiveVolunteerPct >= activePctPositive {
			insights = append(insights, Insight{
				Type:  "positive",
				Title: "Strong volunteer engagement",
				Text:  fmt.Sprintf("%.0f%% of volunteers are currently active.", summary.ActiveVolunteerPct),
			})
		} else if summary.ActiveVolunteerPct < activePctWarning {
			insights = append(insights, Insight{
				Type:  "warning",
				Title: "Low volunteer engagement",
				Text:  fmt.Sprintf("Only %.0f%% of volunteers are currently active.", summary.ActiveVolunteerPct),
			})
		}
	}

	// Standout volunteer.
	if len(topVolunteers) > 0 && topVolunteers[0].Hours > 0 {
		lead := topVolunteers[0]
		insights = append(insights, Insight{
			Type:  "positive",
			Title: "Top volunteer",
			Text:  fmt.Sprintf("%s leads the %s with %.1f hours.", lead.Name, cal.SchoolYearLabel(now), lead.Hours),
		})
	}

	return insights
}

// GenerateRecommendations runs the suggestion rule set. Each rule emits
// independently with an attached priority.
func GenerateRecommendations(volunteers []Volunteer, sessions []Session, breakdown ActivityBreakdown, cal SchoolCalendar, now time.Time) []Recommendation {
	var recs []Recommendation

	// Locations where children outnumber volunteers by too much.
	type ratioAcc struct {
		children   int
		volunteers int
	}
	byLocation := make(map[string]*ratioAcc)
	for _, s := range sessions {
		if s.Location == "" || s.VolunteerCount == 0 {
			continue
		}
		acc, ok := byLocation[s.Location]
		if !ok {
			acc = &ratioAcc{}
			byLocation[s.Location] = acc
		}
		acc.children += s.Children
		acc.volunteers += s.VolunteerCount
	}
	for location, acc := range byLocation {
		if acc.volunteers == 0 {
			continue
		}
		ratio := float64(acc.children) / float64(acc.volunteers)
		if ratio > ratioNeedsVolunteers {
			recs = append(recs, Recommendation{
				Priority: "high",
				Title:    "Needs more volunteers",
				Text:     fmt.Sprintf("%s averages %.1f children per volunteer. Consider assigning more volunteers there.", location, Round1(ratio)),
			})
		}
	}

	// Dormant volunteers worth a nudge.
	if breakdown.Dormant > dormantReactivateCount {
		recs = append(recs, Recommendation{
			Priority: "medium",
			Title:    "Reactivate volunteers",
			Text:     fmt.Sprintf("%d volunteers are dormant. A check-in message could bring some of them back.", breakdown.Dormant),
		})
	}

	// Recruitment concentrated in one school.
	if len(volunteers) > 0 {
		bySchool := make(map[string]int)
		for _, v := range volunteers {
			if v.School != "" {
				bySchool[v.School]++
			}
		}
		for school, count := range bySchool {
			share := float64(count) / float64(len(volunteers)) * 100
			if share > schoolSharePct {
				recs = append(recs, Recommendation{
					Priority: "medium",
					Title:    "Diversify recruitment",
					Text:     fmt.Sprintf("%s supplies %.0f%% of all volunteers. Recruiting at other schools would spread the load.", school, share),
				})
			}
		}
	}

	// Upcoming holiday scheduling.
	if h, start, ok := cal.NextHoliday(now, holidayLookaheadDays*24*time.Hour); ok {
		recs = append(recs, Recommendation{
			Priority: "info",
			Title:    "Holiday ahead",
			Text:     fmt.Sprintf("The %s starts on %s. Confirm session coverage around it.", h.Name, start.Format("Jan 2")),
		})
	}

	return recs
}
