package source

import (
	"termini-stats/internal/stats"
)

const defaultSessionHours = 2.0

// MapVolunteers converts roster DTOs into domain records with non-null
// numerics.
func MapVolunteers(dtos []VolunteerDTO) []stats.Volunteer {
	volunteers := make([]stats.Volunteer, 0, len(dtos))
	for _, d := range dtos {
		if d.Name == "" {
			continue
		}
		hours := float64(d.Hours)
		if hours < 0 {
			hours = 0
		}
		volunteers = append(volunteers, stats.Volunteer{
			Name:      d.Name,
			School:    d.School,
			Grade:     string(d.Grade),
			Phone:     d.Phone,
			Hours:     hours,
			Locations: d.Locations,
		})
	}
	return volunteers
}

// MapSessions converts session DTOs into domain records. Absent or
// non-positive durations coalesce to the 2-hour default; negative counts
// clamp to zero; the raw date string is preserved alongside the parsed date.
func MapSessions(dtos []SessionDTO) []stats.Session {
	sessions := make([]stats.Session, 0, len(dtos))
	for _, d := range dtos {
		hours := defaultSessionHours
		if d.Hours != nil && float64(*d.Hours) > 0 {
			hours = float64(*d.Hours)
		}
		sessions = append(sessions, stats.Session{
			Date:           d.Date,
			ParsedDate:     ParseDate(d.Date),
			Location:       d.Location,
			Children:       clampCount(float64(d.ChildrenCount)),
			VolunteerCount: clampCount(float64(d.VolunteerCount)),
			Volunteers:     d.VolunteersList,
			Hours:          hours,
		})
	}
	return sessions
}

func clampCount(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
