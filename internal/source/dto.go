package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The upstream API is a thin wrapper over a spreadsheet, so numeric fields
// arrive as numbers, numeric strings, or not at all. The DTO layer absorbs
// that looseness; the mapper emits fully-populated domain records.

// VolunteerDTO is one roster row as served by the remote API.
type VolunteerDTO struct {
	Name      string     `json:"name"`
	School    string     `json:"school"`
	Grade     FlexString `json:"grade"`
	Phone     string     `json:"phone"`
	Hours     FlexFloat  `json:"hours"`
	Locations []string   `json:"locations"`
}

// SessionDTO is one session row as served by the remote API.
type SessionDTO struct {
	Date           string     `json:"date"`
	Location       string     `json:"location"`
	ChildrenCount  FlexFloat  `json:"childrenCount"`
	VolunteerCount FlexFloat  `json:"volunteerCount"`
	VolunteersList []string   `json:"volunteersList"`
	Hours          *FlexFloat `json:"hours"`
}

// FlexString accepts a JSON string or number and keeps the string form.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FlexFloat accepts a JSON number, a numeric string, or null. Anything
// unparseable coalesces to zero; bad cells are absence of data here.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// dateLayouts are tried in order when parsing session dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
	"2.1.2006",
	"02.01.2006.",
	"2.1.2006.",
	"01/02/2006",
}

// ParseDate attempts the known date formats. The zero time signals an
// unparseable date; callers treat that as absence of data, never an error.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
