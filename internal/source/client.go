package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"termini-stats/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Config holds the remote API connection settings.
type Config struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	SnapshotPath string
	CacheTTL     time.Duration
}

// Client fetches the volunteer and session collections from the remote API
// and keeps the latest snapshot in memory. A disk copy lets the dashboard
// keep serving through upstream outages.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu        sync.RWMutex
	snapshot  *Snapshot
	fetchedAt time.Time
}

// NewClient creates a client. A snapshot persisted by a previous run is
// loaded eagerly so the first request can be served without the upstream.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}

	if snap, err := LoadSnapshot(cfg.SnapshotPath); err == nil {
		c.snapshot = snap
		c.fetchedAt = snap.FetchedAt
		log.Info().
			Str("id", snap.ID).
			Time("fetchedAt", snap.FetchedAt).
			Int("volunteers", len(snap.Volunteers)).
			Int("sessions", len(snap.Sessions)).
			Msg("Restored snapshot from disk")
	}

	return c
}

// Data returns the current volunteer and session collections, fetching from
// the upstream when the in-memory snapshot is stale. On fetch failure a stale
// snapshot is served rather than propagating the error upward, as long as one
// exists.
func (c *Client) Data(ctx context.Context) ([]stats.Volunteer, []stats.Session, error) {
	c.mu.RLock()
	snap := c.snapshot
	age := time.Since(c.fetchedAt)
	c.mu.RUnlock()

	if snap != nil && age < c.cfg.CacheTTL {
		return snap.Volunteers, snap.Sessions, nil
	}

	fresh, err := c.Refresh(ctx)
	if err != nil {
		if snap != nil {
			log.Warn().Err(err).Msg("Refresh failed, serving stale snapshot")
			return snap.Volunteers, snap.Sessions, nil
		}
		return nil, nil, err
	}
	return fresh.Volunteers, fresh.Sessions, nil
}

// Refresh fetches both collections concurrently and replaces the snapshot.
func (c *Client) Refresh(ctx context.Context) (*Snapshot, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("no API base URL configured")
	}

	var volunteerDTOs []VolunteerDTO
	var sessionDTOs []SessionDTO

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(ctx, "/volunteers", &volunteerDTOs)
	})
	g.Go(func() error {
		return c.getJSON(ctx, "/sessions", &sessionDTOs)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := NewSnapshot(MapVolunteers(volunteerDTOs), MapSessions(sessionDTOs))

	c.mu.Lock()
	c.snapshot = snap
	c.fetchedAt = snap.FetchedAt
	c.mu.Unlock()

	if err := snap.Save(c.cfg.SnapshotPath); err != nil {
		log.Warn().Err(err).Str("path", c.cfg.SnapshotPath).Msg("Failed to persist snapshot")
	}

	log.Info().
		Str("id", snap.ID).
		Int("volunteers", len(snap.Volunteers)).
		Int("sessions", len(snap.Sessions)).
		Msg("Snapshot refreshed")

	return snap, nil
}

// Status describes the snapshot currently held in memory.
func (c *Client) Status() (id string, fetchedAt time.Time, volunteers, sessions int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return "", time.Time{}, 0, 0
	}
	return c.snapshot.ID, c.snapshot.FetchedAt, len(c.snapshot.Volunteers), len(c.snapshot.Sessions)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	url := c.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetching %s: unexpected status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("Fetched collection")
	return nil
}
