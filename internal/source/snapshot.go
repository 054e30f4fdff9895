package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"termini-stats/internal/stats"

	"github.com/google/uuid"
)

// Snapshot is one fetched state of both collections. The ID ties log lines,
// health output, and the disk copy to a specific fetch.
type Snapshot struct {
	ID         string            `json:"id"`
	FetchedAt  time.Time         `json:"fetchedAt"`
	Volunteers []stats.Volunteer `json:"volunteers"`
	Sessions   []stats.Session   `json:"sessions"`
}

// NewSnapshot stamps a fresh snapshot with an ID and fetch time.
func NewSnapshot(volunteers []stats.Volunteer, sessions []stats.Session) *Snapshot {
	return &Snapshot{
		ID:         uuid.NewString(),
		FetchedAt:  time.Now().UTC(),
		Volunteers: volunteers,
		Sessions:   sessions,
	}
}

// Save writes the snapshot to disk atomically (temp file + rename).
func (s *Snapshot) Save(path string) error {
	if path == "" {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot reads a previously persisted snapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("no snapshot path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &snap, nil
}
