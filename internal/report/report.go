package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"termini-stats/internal/stats"

	"github.com/google/uuid"
)

// Data is everything the report template needs.
type Data struct {
	GeneratedAt time.Time
	SchoolYear  string
	Bundle      stats.StatisticsBundle
}

// Write renders the one-shot HTML dashboard report into dir and returns the
// file path.
func Write(dir string, bundle stats.StatisticsBundle, cal stats.SchoolCalendar, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report-%s.html", uuid.NewString()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	data := Data{
		GeneratedAt: now,
		SchoolYear:  cal.SchoolYearLabel(now),
		Bundle:      bundle,
	}
	if err := reportTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return path, nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Volunteer report {{.SchoolYear}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; border-bottom: 1px solid #ddd; }
table { border-collapse: collapse; margin-top: .5rem; }
th, td { padding: .3rem .8rem; border: 1px solid #ddd; text-align: left; }
.positive { color: #1a7f37; }
.negative, .warning { color: #b35900; }
.info { color: #555; }
small { color: #777; }
</style>
</head>
<body>
<h1>Volunteer report, school year {{.SchoolYear}}</h1>
<small>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}</small>

<h2>Summary</h2>
<table>
<tr><th>Sessions</th><td>{{.Bundle.Summary.TotalSessions}}</td></tr>
<tr><th>Children reached</th><td>{{.Bundle.Summary.TotalChildren}}</td></tr>
<tr><th>Volunteer hours</th><td>{{.Bundle.Summary.TotalHours}}</td></tr>
<tr><th>Volunteers</th><td>{{.Bundle.Summary.VolunteerCount}} ({{.Bundle.Summary.ActiveVolunteerPct}}% active)</td></tr>
<tr><th>Cancelled sessions</th><td>{{.Bundle.SessionCounts.Cancelled}} of {{.Bundle.SessionCounts.Total}}</td></tr>
</table>

<h2>Last 12 months</h2>
<table>
<tr><th>Month</th><th>Sessions</th><th>Children</th><th>Hours</th></tr>
{{range .Bundle.Trend}}<tr><td>{{.Label}}</td><td>{{.Sessions}}</td><td>{{.Children}}</td><td>{{.Hours}}</td></tr>
{{end}}</table>

<h2>Forecast ({{.Bundle.Forecast.Trend}}, confidence {{.Bundle.Forecast.Confidence}}%)</h2>
<table>
<tr><th>Month</th><th>Predicted sessions</th></tr>
{{range .Bundle.Forecast.Predicted}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>
{{end}}</table>

<h2>Top volunteers</h2>
<table>
<tr><th>#</th><th>Name</th><th>School</th><th>Hours</th></tr>
{{range $i, $v := .Bundle.TopVolunteers}}<tr><td>{{$i}}</td><td>{{$v.Name}}</td><td>{{$v.School}}</td><td>{{$v.Hours}}</td></tr>
{{end}}</table>

<h2>Insights</h2>
<ul>
{{range .Bundle.Insights}}<li class="{{.Type}}"><strong>{{.Title}}:</strong> {{.Text}}</li>
{{end}}</ul>

<h2>Recommendations</h2>
<ul>
{{range .Bundle.Recommendations}}<li><strong>[{{.Priority}}] {{.Title}}:</strong> {{.Text}}</li>
{{end}}</ul>

</body>
</html>
`))
