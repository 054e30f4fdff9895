package stats

import (
	"fmt"
	"time"
)

// MonthDay is a recurring calendar anchor (no year).
type MonthDay struct {
	Month time.Month `json:"month" yaml:"month"`
	Day   int        `json:"day" yaml:"day"`
}

// Holiday is a recurring no-school period. Ranges may wrap the year boundary
// (winter break runs Dec into Jan).
type Holiday struct {
	Name  string   `json:"name" yaml:"name"`
	Start MonthDay `json:"start" yaml:"start"`
	End   MonthDay `json:"end" yaml:"end"`
}

// SchoolCalendar drives the narrative-only calendar heuristics: school-year
// bounds, semester labels, and holiday awareness in the insight rules.
type SchoolCalendar struct {
	YearStart MonthDay  `json:"yearStart" yaml:"year_start"`
	Holidays  []Holiday `json:"holidays" yaml:"holidays"`
}

// DefaultCalendar returns the built-in school calendar used when no calendar
// file is configured.
func DefaultCalendar() SchoolCalendar {
	return SchoolCalendar{
		YearStart: MonthDay{Month: time.September, Day: 1},
		Holidays: []Holiday{
			{Name: "summer holidays", Start: MonthDay{time.July, 1}, End: MonthDay{time.August, 31}},
			{Name: "winter break", Start: MonthDay{time.December, 20}, End: MonthDay{time.January, 10}},
			{Name: "spring break", Start: MonthDay{time.March, 25}, End: MonthDay{time.April, 5}},
		},
	}
}

// SchoolYearBounds returns the inclusive bounds of the school year containing
// now.
func (c SchoolCalendar) SchoolYearBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), c.YearStart.Month, c.YearStart.Day, 0, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return start, end
}

// SchoolYearLabel returns the "2025/26" style label for the school year
// containing now.
func (c SchoolCalendar) SchoolYearLabel(now time.Time) string {
	start, _ := c.SchoolYearBounds(now)
	return fmt.Sprintf("%d/%02d", start.Year(), (start.Year()+1)%100)
}

// SemesterLabel names the half of the school year containing now. The first
// semester runs from the school-year start through January, the second from
// February onward.
func (c SchoolCalendar) SemesterLabel(now time.Time) string {
	start, _ := c.SchoolYearBounds(now)
	cut := time.Date(start.Year()+1, time.February, 1, 0, 0, 0, 0, now.Location())
	if now.Before(cut) {
		return "first semester"
	}
	return "second semester"
}

// resolve pins a recurring holiday to a concrete range whose start falls in
// the given year.
func (h Holiday) resolve(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, h.Start.Month, h.Start.Day, 0, 0, 0, 0, loc)
	endYear := year
	if h.End.Month < h.Start.Month {
		endYear++
	}
	end := time.Date(endYear, h.End.Month, h.End.Day, 23, 59, 59, 0, loc)
	return start, end
}

// HolidayOverlapping returns the first configured holiday whose resolved
// range intersects [from, to].
func (c SchoolCalendar) HolidayOverlapping(from, to time.Time) (Holiday, bool) {
	if from.IsZero() || to.IsZero() {
		return Holiday{}, false
	}
	for _, h := range c.Holidays {
		for _, year := range []int{from.Year() - 1, from.Year(), to.Year()} {
			start, end := h.resolve(year, from.Location())
			if !start.After(to) && !end.Before(from) {
				return h, true
			}
		}
	}
	return Holiday{}, false
}

// NextHoliday returns the nearest configured holiday starting within the
// lookahead window after now.
func (c SchoolCalendar) NextHoliday(now time.Time, lookahead time.Duration) (Holiday, time.Time, bool) {
	var best Holiday
	var bestStart time.Time
	horizon := now.Add(lookahead)

	for _, h := range c.Holidays {
		for _, year := range []int{now.Year(), now.Year() + 1} {
			start, _ := h.resolve(year, now.Location())
			if start.Before(now) || start.After(horizon) {
				continue
			}
			if bestStart.IsZero() || start.Before(bestStart) {
				best = h
				bestStart = start
			}
		}
	}
	return best, bestStart, !bestStart.IsZero()
}
