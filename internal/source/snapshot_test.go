package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"termini-stats/internal/stats"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "snapshot.json")

	snap := NewSnapshot(
		[]stats.Volunteer{{Name: "Ana", Hours: 12}},
		[]stats.Session{{Date: "2026-03-10", ParsedDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), Children: 5}},
	)
	if snap.ID == "" || snap.FetchedAt.IsZero() {
		t.Fatalf("snapshot not stamped: %+v", snap)
	}

	if err := snap.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	// The temp file must not survive the rename.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != snap.ID {
		t.Errorf("loaded ID = %s, want %s", loaded.ID, snap.ID)
	}
	if len(loaded.Volunteers) != 1 || loaded.Volunteers[0].Name != "Ana" {
		t.Errorf("loaded volunteers = %+v", loaded.Volunteers)
	}
	if len(loaded.Sessions) != 1 || loaded.Sessions[0].Children != 5 {
		t.Errorf("loaded sessions = %+v", loaded.Sessions)
	}
}

func TestSnapshotSaveNoPath(t *testing.T) {
	snap := NewSnapshot(nil, nil)
	if err := snap.Save(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing snapshot")
	}
	if _, err := LoadSnapshot(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
