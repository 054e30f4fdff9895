package stats

import (
	"math"
	"sort"
	"time"
)

const (
	forecastHistoryMonths = 6
	forecastHorizonMonths = 3
	trendSlopeThreshold   = 0.5
	anomalyZThreshold     = 2.0
	anomalyMinMonths      = 3
)

// ForecastSessions fits an ordinary least-squares line over the trailing
// 6-month session counts (zero-filled) and projects 3 future months. Cancelled
// sessions must already be stripped by the caller.
func ForecastSessions(sessions []Session, now time.Time) Forecast {
	historical := monthlyCounts(sessions, now)

	n := float64(len(historical))
	var sumX, sumY, sumXY, sumXX float64
	for i, m := range historical {
		x := float64(i)
		y := float64(m.Count)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	slope := 0.0
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / n

	predicted := make([]MonthCount, 0, forecastHorizonMonths)
	for i := 1; i <= forecastHorizonMonths; i++ {
		anchor := MonthStart(now).AddDate(0, i, 0)
		value := intercept + slope*(n+float64(i)-1)
		predicted = append(predicted, MonthCount{
			Month: MonthKey(anchor),
			Label: MonthLabel(anchor),
			Count: int(math.Round(math.Max(0, value))),
		})
	}

	trend := "stable"
	if slope > trendSlopeThreshold {
		trend = "growing"
	} else if slope < -trendSlopeThreshold {
		trend = "declining"
	}

	return Forecast{
		Historical: historical,
		Predicted:  predicted,
		Trend:      trend,
		// Fixed heuristic, not a statistical interval.
		Confidence: Clamp(70+n*5, 50, 95),
	}
}

// DetectAnomalies flags months whose session count deviates from the series
// mean by more than two standard deviations. Fewer than three populated
// months yield no result regardless of variance.
func DetectAnomalies(sessions []Session) []Anomaly {
	buckets := BucketByMonth(sessions)
	if len(buckets) < anomalyMinMonths {
		return nil
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = float64(buckets[k].Sessions)
	}

	mean := Mean(values)
	sigma := StdDev(values)
	if sigma == 0 {
		sigma = 1
	}

	var anomalies []Anomaly
	for i, k := range keys {
		z := (values[i] - mean) / sigma
		if z > anomalyZThreshold {
			anomalies = append(anomalies, Anomaly{
				Type:     "spike",
				Month:    k,
				Value:    buckets[k].Sessions,
				Expected: Round1(mean),
			})
		} else if z < -anomalyZThreshold {
			anomalies = append(anomalies, Anomaly{
				Type:     "drop",
				Month:    k,
				Value:    buckets[k].Sessions,
				Expected: Round1(mean),
			})
		}
	}
	return anomalies
}

func monthlyCounts(sessions []Session, now time.Time) []MonthCount {
	buckets := BucketByMonth(sessions)
	series := make([]MonthCount, 0, forecastHistoryMonths)
	for _, anchor := range TrailingMonths(now, forecastHistoryMonths) {
		mc := MonthCount{Month: MonthKey(anchor), Label: MonthLabel(anchor)}
		if b, ok := buckets[mc.Month]; ok {
			mc.Count = b.Sessions
		}
		series = append(series, mc)
	}
	return series
}
