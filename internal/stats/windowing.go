package stats

import "time"

// MonthKey returns the sortable "2006-01" key for a date's calendar month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel returns the human-readable "Jan 2006" label for a month.
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// MonthStart normalizes a timestamp to the first instant of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last nanosecond of a timestamp's calendar month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// TrailingMonths enumerates the first-of-month anchors for the n calendar
// months ending at now's month, oldest first.
func TrailingMonths(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	months := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, MonthStart(now).AddDate(0, -i, 0))
	}
	return months
}

// FilterByPeriod returns the sessions whose parsed date falls inside p.
// Sessions without a usable date never match a bounded period; a fully
// unbounded period passes everything through, dated or not.
func FilterByPeriod(sessions []Session, p Period) []Session {
	if p.Start == nil && p.End == nil {
		return sessions
	}
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if p.Contains(s.ParsedDate) {
			out = append(out, s)
		}
	}
	return out
}

// MonthBucket accumulates session metrics for one calendar month.
type MonthBucket struct {
	Anchor     time.Time
	Sessions   int
	Children   int
	Volunteers int
	Hours      float64
}

// BucketByMonth groups dated sessions into calendar-month buckets keyed by
// MonthKey. Undated sessions are skipped.
func BucketByMonth(sessions []Session) map[string]*MonthBucket {
	buckets := make(map[string]*MonthBucket)
	for _, s := range sessions {
		if !s.HasDate() {
			continue
		}
		key := MonthKey(s.ParsedDate)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Anchor: MonthStart(s.ParsedDate)}
			buckets[key] = b
		}
		b.Sessions++
		b.Children += s.Children
		b.Volunteers += s.VolunteerCount
		b.Hours += s.Hours
	}
	return buckets
}

// MonthlySeries produces a fixed-length trailing series ending at now's month,
// zero-filled for months without data.
func MonthlySeries(sessions []Session, now time.Time, n int) []MonthStat {
	buckets := BucketByMonth(sessions)
	series := make([]MonthStat, 0, n)
	for _, anchor := range TrailingMonths(now, n) {
		stat := MonthStat{Month: MonthKey(anchor), Label: MonthLabel(anchor)}
		if b, ok := buckets[stat.Month]; ok {
			stat.Sessions = b.Sessions
			stat.Children = b.Children
			stat.Volunteers = b.Volunteers
			stat.Hours = Round1(b.Hours)
		}
		series = append(series, stat)
	}
	return series
}
