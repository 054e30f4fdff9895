package stats

import (
	"time"
)

// Volunteer is one person in the coordination roster. Name is the natural key;
// there is no synthetic ID upstream. Hours is the precomputed lifetime total
// maintained by the data source and is never recomputed from sessions here.
type Volunteer struct {
	Name      string   `json:"name"`
	School    string   `json:"school,omitempty"`
	Grade     string   `json:"grade,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Hours     float64  `json:"hours"`
	Locations []string `json:"locations,omitempty"`
}

// Session is one scheduled volunteering occurrence ("termin") at a location.
// ParsedDate is the zero time when the raw date string was unparseable; such
// sessions are skipped by every date-bucketed computation.
type Session struct {
	Date           string    `json:"date"`
	ParsedDate     time.Time `json:"parsedDate"`
	Location       string    `json:"location"`
	Children       int       `json:"childrenCount"`
	VolunteerCount int       `json:"volunteerCount"`
	Volunteers     []string  `json:"volunteersList"`
	Hours          float64   `json:"hours"`
}

// HasDate reports whether the session carries a usable calendar date.
func (s Session) HasDate() bool {
	return !s.ParsedDate.IsZero()
}

// Period is an arbitrary date range. A nil bound means unbounded on that side.
type Period struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	Label string     `json:"label"`
}

// Contains reports whether t falls inside the period. Zero times never match.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if p.Start != nil && t.Before(*p.Start) {
		return false
	}
	if p.End != nil && t.After(*p.End) {
		return false
	}
	return true
}

// DateRange is a closed interval used by the aggregation filters.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Filters narrows the working set before aggregation. All fields are optional
// and combine with AND. Schools applies to the volunteer collection only.
type Filters struct {
	DateRange *DateRange `json:"dateRange,omitempty"`
	Year      int        `json:"year,omitempty"`
	Locations []string   `json:"locations,omitempty"`
	Schools   []string   `json:"schools,omitempty"`
}

// Activity status constants. Derived per volunteer, never stored.
const (
	StatusActive   = "active"
	StatusDormant  = "dormant"
	StatusInactive = "inactive"
)

// Activity is the classifier result for a single volunteer.
type Activity struct {
	Status   string `json:"status"`
	Label    string `json:"label"`
	DotColor string `json:"dotColor"`
}

// SessionCounts partitions a raw session collection by status.
type SessionCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Cancelled int `json:"cancelled"`
}

// Summary holds the headline totals over the filtered working set.
type Summary struct {
	TotalSessions      int     `json:"totalSessions"`
	TotalChildren      int     `json:"totalChildren"`
	TotalHours         float64 `json:"totalHours"`
	VolunteerCount     int     `json:"volunteerCount"`
	ActiveVolunteerPct float64 `json:"activeVolunteerPct"`
	AvgChildren        float64 `json:"avgChildrenPerSession"`
	AvgVolunteers      float64 `json:"avgVolunteersPerSession"`
}

// LocationStat is the per-location group-by row.
type LocationStat struct {
	Location   string  `json:"location"`
	Sessions   int     `json:"sessions"`
	Children   int     `json:"children"`
	Volunteers int     `json:"volunteers"`
	Hours      float64 `json:"hours"`
}

// SchoolStat is the per-school group-by row over volunteers.
type SchoolStat struct {
	School     string  `json:"school"`
	Volunteers int     `json:"volunteers"`
	Hours      float64 `json:"hours"`
}

// GradeStat is the per-grade group-by row over volunteers.
type GradeStat struct {
	Grade      string  `json:"grade"`
	Volunteers int     `json:"volunteers"`
	Hours      float64 `json:"hours"`
}

// MonthStat is one calendar-month bucket of session activity.
type MonthStat struct {
	Month      string  `json:"month"` // "2006-01"
	Label      string  `json:"label"` // "Jan 2006"
	Sessions   int     `json:"sessions"`
	Children   int     `json:"children"`
	Volunteers int     `json:"volunteers"`
	Hours      float64 `json:"hours"`
}

// VolunteerRank is one row of a ranked volunteer listing.
type VolunteerRank struct {
	Name   string  `json:"name"`
	School string  `json:"school,omitempty"`
	Hours  float64 `json:"hours"`
}

// ActivityBreakdown counts volunteers per activity status.
type ActivityBreakdown struct {
	Active   int `json:"active"`
	Dormant  int `json:"dormant"`
	Inactive int `json:"inactive"`
}

// HeatCell aggregates one calendar day for the heatmap, keyed by raw date string.
type HeatCell struct {
	Sessions   int `json:"sessions"`
	Children   int `json:"children"`
	Volunteers int `json:"volunteers"`
}

// Retention describes the 6-month cohort retention snapshot.
type Retention struct {
	CohortSize int     `json:"cohortSize"`
	Retained   int     `json:"retained"`
	Rate       float64 `json:"rate"`
}

// DurationStats summarizes session durations in hours.
type DurationStats struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Total float64 `json:"total"`
}

// StackedMonth is one month of the stacked-by-location series.
type StackedMonth struct {
	Month      string         `json:"month"`
	Label      string         `json:"label"`
	ByLocation map[string]int `json:"byLocation"`
}

// RankingSnapshot is the top-10 standing by cumulative session hours as of one
// month's end.
type RankingSnapshot struct {
	Month string          `json:"month"`
	Label string          `json:"label"`
	Top   []VolunteerRank `json:"top"`
}

// Leaderboards holds the trailing-window hour rankings.
type Leaderboards struct {
	Weekly  []VolunteerRank `json:"weekly"`
	Monthly []VolunteerRank `json:"monthly"`
}

// Insight is one human-readable observation emitted by the rule set.
type Insight struct {
	Type  string `json:"type"` // "positive", "negative", "warning", "info"
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Recommendation is one prioritized suggestion emitted by the rule set.
type Recommendation struct {
	Priority string `json:"priority"` // "high", "medium", "low", "info"
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// MonthCount is one month of the forecast series.
type MonthCount struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Forecast is the 3-month linear projection over the trailing 6-month series.
// Confidence is a labeled heuristic (70 + 5 per data point, clamped to
// [50,95]), not a statistical interval.
type Forecast struct {
	Historical []MonthCount `json:"historical"`
	Predicted  []MonthCount `json:"predicted"`
	Trend      string       `json:"trend"` // "growing", "declining", "stable"
	Confidence float64      `json:"confidence"`
}

// Anomaly flags a statistically unusual month in the session series.
type Anomaly struct {
	Type     string  `json:"type"` // "spike", "drop"
	Month    string  `json:"month"`
	Value    int     `json:"value"`
	Expected float64 `json:"expected"`
}

// StatisticsBundle is the composite result of one Aggregate call.
type StatisticsBundle struct {
	SessionCounts     SessionCounts       `json:"sessionCounts"`
	Summary           Summary             `json:"summary"`
	ByLocation        []LocationStat      `json:"byLocation"`
	BySchool          []SchoolStat        `json:"bySchool"`
	ByMonth           []MonthStat         `json:"byMonth"`
	ByGrade           []GradeStat         `json:"byGrade"`
	TopVolunteers     []VolunteerRank     `json:"topVolunteers"`
	ActivityBreakdown ActivityBreakdown   `json:"activityBreakdown"`
	Trend             []MonthStat         `json:"trend"`
	Heatmap           map[string]HeatCell `json:"heatmap"`
	Retention         Retention           `json:"retention"`
	Durations         DurationStats       `json:"durations"`
	StackedByLocation []StackedMonth      `json:"stackedByLocation"`
	RankingHistory    []RankingSnapshot   `json:"rankingHistory"`
	Leaderboards      Leaderboards        `json:"leaderboards"`
	Insights          []Insight           `json:"insights"`
	Forecast          Forecast            `json:"forecast"`
	Anomalies         []Anomaly           `json:"anomalies"`
	Recommendations   []Recommendation    `json:"recommendations"`
}

// PeriodStats is the independent stats tuple computed per comparison slice.
type PeriodStats struct {
	Sessions         int     `json:"sessions"`
	Children         int     `json:"children"`
	Volunteers       int     `json:"volunteers"`
	UniqueVolunteers int     `json:"uniqueVolunteers"`
	AvgChildren      float64 `json:"avgChildrenPerSession"`
	AvgVolunteers    float64 `json:"avgVolunteersPerSession"`
	AvgRatio         float64 `json:"avgRatio"`
	TotalHours       float64 `json:"totalHours"`
}

// PeriodSide binds a period label to its computed stats.
type PeriodSide struct {
	Label string      `json:"label"`
	Stats PeriodStats `json:"stats"`
}

// Changes holds the rounded percentage deltas between the two periods.
type Changes struct {
	Sessions         int `json:"sessions"`
	Children         int `json:"children"`
	Volunteers       int `json:"volunteers"`
	UniqueVolunteers int `json:"uniqueVolunteers"`
	AvgChildren      int `json:"avgChildrenPerSession"`
	AvgRatio         int `json:"avgRatio"`
	TotalHours       int `json:"totalHours"`
}

// Winners records, per metric, which period had the strictly larger value
// (1 or 2; 0 for a tie).
type Winners struct {
	Sessions         int `json:"sessions"`
	Children         int `json:"children"`
	Volunteers       int `json:"volunteers"`
	UniqueVolunteers int `json:"uniqueVolunteers"`
	AvgChildren      int `json:"avgChildrenPerSession"`
	AvgRatio         int `json:"avgRatio"`
}

// LocationDelta is a per-location comparison row, ranked by |change|.
type LocationDelta struct {
	Location  string `json:"location"`
	Children1 int    `json:"children1"`
	Children2 int    `json:"children2"`
	Change    int    `json:"change"`
}

// VolunteerDelta is a per-volunteer comparison row, ranked by signed change.
type VolunteerDelta struct {
	Name   string  `json:"name"`
	Hours1 float64 `json:"hours1"`
	Hours2 float64 `json:"hours2"`
	Change int     `json:"change"`
}

// ComparisonResult is the composite result of one Compare call.
type ComparisonResult struct {
	Period1       PeriodSide       `json:"period1"`
	Period2       PeriodSide       `json:"period2"`
	Changes       Changes          `json:"changes"`
	Winners       Winners          `json:"winners"`
	OverallWinner int              `json:"overallWinner"` // 1, 2, or 0 for tie
	Locations     []LocationDelta  `json:"locations"`
	Volunteers    []VolunteerDelta `json:"volunteers"`
	TopImprovers  []VolunteerDelta `json:"topImprovers"`
	TopDecliners  []VolunteerDelta `json:"topDecliners"`
	Insights      []Insight        `json:"insights"`
}
