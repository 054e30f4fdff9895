package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"termini-stats/internal/stats"
)

func TestWrite(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	volunteers := []stats.Volunteer{
		{Name: "Ana", School: "Gimnazija", Hours: 40},
		{Name: "Ivan", School: "Gimnazija", Hours: 25},
	}
	sessions := []stats.Session{
		{
			Date:           "2026-03-10",
			ParsedDate:     time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			Location:       "Dugave",
			Children:       10,
			VolunteerCount: 2,
			Volunteers:     []string{"Ana", "Ivan"},
			Hours:          2,
		},
	}
	cal := stats.DefaultCalendar()
	bundle := stats.Aggregate(volunteers, sessions, stats.Filters{}, cal, now)

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := Write(dir, bundle, cal, now)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, ".html") {
		t.Errorf("report path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	html := string(data)
	for _, want := range []string{"2025/26", "Ana", "Gimnazija", "Mar 2026"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
