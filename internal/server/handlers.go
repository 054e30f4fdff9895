package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"termini-stats/internal/stats"

	"github.com/gin-gonic/gin"
)

func contextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// handleStats runs the aggregation engine over the current snapshot with the
// query-supplied filters.
func (s *Server) handleStats(c *gin.Context) {
	volunteers, sessions, err := s.src.Data(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filters := parseFilters(c)
	bundle := stats.Aggregate(volunteers, sessions, filters, s.cfg.Calendar, s.now())
	c.JSON(http.StatusOK, bundle)
}

// handleCompare runs the comparison engine over two query-supplied periods.
func (s *Server) handleCompare(c *gin.Context) {
	volunteers, sessions, err := s.src.Data(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	p1 := parsePeriod(c, "p1", "Period 1")
	p2 := parsePeriod(c, "p2", "Period 2")
	result := stats.Compare(volunteers, sessions, p1, p2)
	c.JSON(http.StatusOK, result)
}

// handleForecast serves the forecast and anomaly view on its own, for
// consumers that do not need the full bundle.
func (s *Server) handleForecast(c *gin.Context) {
	_, sessions, err := s.src.Data(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	active := stats.FilterByStatus(sessions, stats.ModeActive)
	c.JSON(http.StatusOK, gin.H{
		"forecast":  stats.ForecastSessions(active, s.now()),
		"anomalies": stats.DetectAnomalies(active),
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	snap, err := s.src.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         snap.ID,
		"fetchedAt":  snap.FetchedAt,
		"volunteers": len(snap.Volunteers),
		"sessions":   len(snap.Sessions),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	id, fetchedAt, volunteers, sessions := s.src.Status()
	status := "ok"
	if id == "" {
		status = "empty"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"snapshot":   id,
		"fetchedAt":  fetchedAt,
		"volunteers": volunteers,
		"sessions":   sessions,
	})
}

func parseFilters(c *gin.Context) stats.Filters {
	var filters stats.Filters

	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filters.Year = year
	}

	from := parseDate(c.Query("from"))
	to := parseDate(c.Query("to"))
	if !from.IsZero() && !to.IsZero() {
		filters.DateRange = &stats.DateRange{Start: from, End: to}
	}

	filters.Locations = splitList(c.Query("locations"))
	filters.Schools = splitList(c.Query("schools"))
	return filters
}

func parsePeriod(c *gin.Context, prefix, fallbackLabel string) stats.Period {
	p := stats.Period{Label: c.Query(prefix + "_label")}
	if p.Label == "" {
		p.Label = fallbackLabel
	}
	if from := parseDate(c.Query(prefix + "_from")); !from.IsZero() {
		p.Start = &from
	}
	if to := parseDate(c.Query(prefix + "_to")); !to.IsZero() {
		p.End = &to
	}
	return p
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
