package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"termini-stats/internal/stats"
)

func fakeUpstream(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.Header.Get("Authorization") != "Bearer test-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/volunteers":
			fmt.Fprint(w, `[{"name":"Ana","school":"Gimnazija","hours":"12"}]`)
		case "/sessions":
			fmt.Fprint(w, `[{"date":"2026-03-10","location":"Dugave","childrenCount":5,"volunteerCount":1,"volunteersList":["Ana"]}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRefreshAndCache(t *testing.T) {
	hits := 0
	upstream := fakeUpstream(t, &hits)

	c := NewClient(Config{
		BaseURL:      upstream.URL,
		Token:        "test-token",
		SnapshotPath: filepath.Join(t.TempDir(), "snapshot.json"),
	})

	volunteers, sessions, err := c.Data(context.Background())
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(volunteers) != 1 || volunteers[0].Name != "Ana" || volunteers[0].Hours != 12 {
		t.Errorf("volunteers = %+v", volunteers)
	}
	if len(sessions) != 1 || sessions[0].Children != 5 || sessions[0].Hours != 2 {
		t.Errorf("sessions = %+v", sessions)
	}

	// Within the TTL the second read never touches the upstream.
	before := hits
	if _, _, err := c.Data(context.Background()); err != nil {
		t.Fatalf("cached data: %v", err)
	}
	if hits != before {
		t.Errorf("upstream hits went %d -> %d on a warm cache", before, hits)
	}

	id, fetchedAt, nv, ns := c.Status()
	if id == "" || fetchedAt.IsZero() || nv != 1 || ns != 1 {
		t.Errorf("Status = %q %v %d %d", id, fetchedAt, nv, ns)
	}
}

func TestClientServesStaleSnapshotOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	snap := NewSnapshot([]stats.Volunteer{{Name: "Ana", Hours: 3}}, nil)
	snap.FetchedAt = time.Now().Add(-time.Hour)
	if err := snap.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	c := NewClient(Config{BaseURL: dead.URL, SnapshotPath: path, CacheTTL: time.Minute})

	// The snapshot is older than the TTL, the refresh fails, and the stale
	// copy is served anyway.
	volunteers, _, err := c.Data(context.Background())
	if err != nil {
		t.Fatalf("data should fall back to the stale snapshot, got %v", err)
	}
	if len(volunteers) != 1 || volunteers[0].Name != "Ana" {
		t.Errorf("volunteers = %+v", volunteers)
	}
}

func TestClientNoBaseURL(t *testing.T) {
	c := NewClient(Config{})
	if _, _, err := c.Data(context.Background()); err == nil {
		t.Error("expected an error with no base URL and no snapshot")
	}
	if _, err := c.Refresh(context.Background()); err == nil {
		t.Error("expected a refresh error with no base URL")
	}
}

func TestClientUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)

	c := NewClient(Config{BaseURL: upstream.URL})
	if _, err := c.Refresh(context.Background()); err == nil {
		t.Error("expected an error on upstream 500")
	}
}
