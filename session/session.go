// Package session persists the player's identity and preferences between
// runs: the service session id, the safety override, pinned catalog ids
// and the theme. Storage is a single JSON file under the user config
// directory. A missing or corrupt file is never fatal; the caller simply
// bootstraps a fresh session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Prefs is the persisted session record.
type Prefs struct {
	SessionID      string `json:"sessionId"`
	SafetyOverride bool   `json:"safetyOverride"`
	PinnedIDs      []int  `json:"pinnedIds,omitempty"`
	Theme          string `json:"theme,omitempty"`
}

// Store reads and writes the prefs file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the prefs location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "meldboard", "session.json"), nil
}

// Load reads the prefs file. ok is false when the file is missing or
// unreadable as JSON.
func (s *Store) Load() (Prefs, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Prefs{}, false
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, false
	}
	return p, true
}

// Save writes the prefs file atomically (temp file + rename).
func (s *Store) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Bootstrapper creates a new remote session.
type Bootstrapper interface {
	CreateSession(ctx context.Context, safetyOverride bool) (string, []int, error)
}

// Bootstrap returns the stored prefs, creating and persisting a new remote
// session when none exists yet. The returned seed ids are non-nil only on
// a fresh bootstrap.
func Bootstrap(ctx context.Context, store *Store, boot Bootstrapper) (Prefs, []int, error) {
	if prefs, ok := store.Load(); ok && prefs.SessionID != "" {
		return prefs, nil, nil
	}

	prefs := Prefs{}
	id, seedIDs, err := boot.CreateSession(ctx, prefs.SafetyOverride)
	if err != nil {
		return Prefs{}, nil, fmt.Errorf("bootstrap session: %w", err)
	}
	if id == "" {
		return Prefs{}, nil, errors.New("bootstrap session: empty session id")
	}
	prefs.SessionID = id
	if err := store.Save(prefs); err != nil {
		return Prefs{}, nil, err
	}
	return prefs, seedIDs, nil
}
