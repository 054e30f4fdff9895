package stats

import (
	"testing"
	"time"
)

var forecastNow = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

// monthSessions fabricates count sessions in the month offset months back
// from forecastNow.
func monthSessions(monthsBack, count int) []Session {
	anchor := MonthStart(forecastNow).AddDate(0, -monthsBack, 0)
	sessions := make([]Session, 0, count)
	for i := 0; i < count; i++ {
		sessions = append(sessions, Session{
			ParsedDate:     anchor.AddDate(0, 0, i%27),
			Children:       5,
			VolunteerCount: 2,
			Hours:          2,
		})
	}
	return sessions
}

func TestForecastGrowingTrend(t *testing.T) {
	var sessions []Session
	for i := 0; i < 6; i++ {
		// 2, 4, 6, 8, 10, 12 sessions over the trailing six months.
		sessions = append(sessions, monthSessions(5-i, 2+2*i)...)
	}

	f := ForecastSessions(sessions, forecastNow)
	if f.Trend != "growing" {
		t.Errorf("Trend = %q, want growing", f.Trend)
	}
	if len(f.Historical) != 6 {
		t.Errorf("Historical len = %d, want 6", len(f.Historical))
	}
	if len(f.Predicted) != 3 {
		t.Errorf("Predicted len = %d, want 3", len(f.Predicted))
	}
	// Slope 2/month from a base of 12 in the last month.
	if f.Predicted[0].Count <= 12 {
		t.Errorf("first prediction = %d, want > 12", f.Predicted[0].Count)
	}
	if f.Confidence != 95 {
		t.Errorf("Confidence = %v, want 95 (70+5*6 clamped)", f.Confidence)
	}
}

func TestForecastStableOnConstantSeries(t *testing.T) {
	var sessions []Session
	for i := 0; i < 6; i++ {
		sessions = append(sessions, monthSessions(i, 5)...)
	}

	f := ForecastSessions(sessions, forecastNow)
	if f.Trend != "stable" {
		t.Errorf("Trend = %q, want stable", f.Trend)
	}
	for _, p := range f.Predicted {
		if p.Count != 5 {
			t.Errorf("prediction = %d, want 5", p.Count)
		}
	}
}

func TestForecastDecliningNeverNegative(t *testing.T) {
	var sessions []Session
	for i := 0; i < 6; i++ {
		// 11, 9, 7, 5, 3, 1 sessions.
		sessions = append(sessions, monthSessions(5-i, 11-2*i)...)
	}

	f := ForecastSessions(sessions, forecastNow)
	if f.Trend != "declining" {
		t.Errorf("Trend = %q, want declining", f.Trend)
	}
	for _, p := range f.Predicted {
		if p.Count < 0 {
			t.Errorf("prediction went negative: %d", p.Count)
		}
	}
}

func TestForecastEmptyInput(t *testing.T) {
	f := ForecastSessions(nil, forecastNow)
	if f.Trend != "stable" {
		t.Errorf("Trend = %q, want stable", f.Trend)
	}
	if len(f.Historical) != 6 || len(f.Predicted) != 3 {
		t.Errorf("series lengths = %d/%d, want 6/3", len(f.Historical), len(f.Predicted))
	}
	for _, p := range f.Predicted {
		if p.Count != 0 {
			t.Errorf("prediction over empty input = %d, want 0", p.Count)
		}
	}
}

func TestDetectAnomaliesSpike(t *testing.T) {
	var sessions []Session
	for i := 1; i <= 9; i++ {
		sessions = append(sessions, monthSessions(i, 5)...)
	}
	sessions = append(sessions, monthSessions(0, 50)...)

	anomalies := DetectAnomalies(sessions)
	if len(anomalies) != 1 {
		t.Fatalf("anomalies = %d, want 1", len(anomalies))
	}
	a := anomalies[0]
	if a.Type != "spike" || a.Value != 50 {
		t.Errorf("anomaly = %+v", a)
	}
	if a.Month != MonthKey(forecastNow) {
		t.Errorf("anomaly month = %s, want %s", a.Month, MonthKey(forecastNow))
	}
}

func TestDetectAnomaliesRequiresThreeMonths(t *testing.T) {
	sessions := append(monthSessions(0, 1), monthSessions(1, 99)...)
	if got := DetectAnomalies(sessions); got != nil {
		t.Errorf("anomalies below the 3-month minimum = %v, want nil", got)
	}
}

func TestDetectAnomaliesConstantSeries(t *testing.T) {
	var sessions []Session
	for i := 0; i < 5; i++ {
		sessions = append(sessions, monthSessions(i, 4)...)
	}
	// Sigma substitution keeps this from dividing by zero; nothing deviates.
	if got := DetectAnomalies(sessions); got != nil {
		t.Errorf("anomalies over constant series = %v, want nil", got)
	}
}
