package stats

import "time"

// Classification thresholds. Total lifetime hours and hours accrued in the
// recent window are evaluated in order: active, dormant, inactive.
const (
	activeTotalHours  = 10.0
	activeRecentHours = 5.0
	dormantTotalHours = 5.0
	recentWindowDays  = 60
)

// Classify derives a volunteer's engagement level from their lifetime hours
// and their session activity in the last 60 days before now. A nil volunteer
// or missing session collection classifies as inactive; the function never
// fails.
func Classify(v *Volunteer, sessions []Session, now time.Time) Activity {
	if v == nil {
		return inactiveActivity()
	}

	total := v.Hours
	recent := RecentHours(v.Name, sessions, now)

	switch {
	case total >= activeTotalHours || recent >= activeRecentHours:
		return Activity{Status: StatusActive, Label: "Active", DotColor: "green"}
	case total >= dormantTotalHours:
		return Activity{Status: StatusDormant, Label: "Dormant", DotColor: "amber"}
	default:
		return inactiveActivity()
	}
}

// RecentHours sums session hours credited to name within the trailing
// 60-day window ending at now.
func RecentHours(name string, sessions []Session, now time.Time) float64 {
	if name == "" || len(sessions) == 0 {
		return 0
	}

	cutoff := now.AddDate(0, 0, -recentWindowDays)
	total := 0.0
	for _, s := range sessions {
		if !s.HasDate() || s.ParsedDate.Before(cutoff) || s.ParsedDate.After(now) {
			continue
		}
		for _, n := range s.Volunteers {
			if n == name {
				total += s.Hours
				break
			}
		}
	}
	return total
}

func inactiveActivity() Activity {
	return Activity{Status: StatusInactive, Label: "Inactive", DotColor: "gray"}
}
