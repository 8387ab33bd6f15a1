// Package tripcache persists the single "currently active trip id" across
// CLI invocations, the way the mobile app keeps it in device storage so it
// can resume the trip view on relaunch. One slot, last write wins.
package tripcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// state is the on-disk shape of the cache file.
type state struct {
	TripID string `json:"trip_id"`
}

// Store reads and writes the active trip id at a fixed file path.
type Store struct {
	path string
}

// DefaultPath returns the path of the trip cache file.
// Checks the PLANNER_TRIP_FILE environment variable first, then falls back
// to ~/.config/planner/trip.json (honoring XDG_CONFIG_HOME).
func DefaultPath() string {
	if envPath := os.Getenv("PLANNER_TRIP_FILE"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join(os.TempDir(), "planner-trip.json")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "planner", "trip.json")
}

// New returns a Store at the default path.
func New() *Store {
	return NewAt(DefaultPath())
}

// NewAt returns a Store backed by a specific file path.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Save writes tripID to the cache, overwriting any previously stored id.
// Creates the parent directory with mode 0700 if it doesn't exist.
func (s *Store) Save(tripID string) error {
	data, err := json.MarshalIndent(state{TripID: tripID}, "", "  ")
	if err != nil {
		return fmt.Errorf("tripcache: marshal: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("tripcache: create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("tripcache: write %s: %w", s.path, err)
	}
	return nil
}

// Get returns the stored trip id. ok is false when no id has been saved
// (or it was removed) — that is a normal state, not an error.
func (s *Store) Get() (tripID string, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("tripcache: read %s: %w", s.path, err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return "", false, fmt.Errorf("tripcache: parse %s: %w", s.path, err)
	}
	if st.TripID == "" {
		return "", false, nil
	}
	return st.TripID, true, nil
}

// Remove clears the stored trip id. Removing an already-empty cache is a no-op.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tripcache: remove %s: %w", s.path, err)
	}
	return nil
}
