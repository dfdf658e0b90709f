// Package store is the durable persistence adapter. The whole application
// state lives as one JSON document per versioned storage key in a small
// key/value table, so a schema revision can retire old keys without touching
// newer ones.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/makerlab/printcost/internal/pricing"
	"github.com/makerlab/printcost/internal/snapshot"
)

// StorageKey is the storage key of the current schema revision.
const StorageKey = "printcost_v1_5"

// wipeMarkerKey guards the one-shot wipe so it runs once per database.
const wipeMarkerKey = StorageKey + "_wiped_once"

// previousKeys are the retired storage keys removed by the one-shot wipe.
var previousKeys = []string{"printcost_v1_4"}

// State is the complete persisted record: every configuration field inline,
// plus the save list and the product name.
type State struct {
	pricing.Config

	Saves       snapshot.List `json:"saves"`
	ProductName string        `json:"productName"`
}

// DefaultState is the first-run state.
func DefaultState() State {
	return State{
		Config: pricing.DefaultConfig(),
		Saves:  snapshot.List{},
	}
}

// Store reads and writes application state in SQLite.
type Store struct {
	db *sql.DB
}

// New wraps an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// WipeOnce removes prior-revision keys (and any current-key leftovers they
// may have seeded) the first time this schema revision runs, then sets a
// marker so the wipe never repeats. The reset to defaults is irreversible.
func (s *Store) WipeOnce() (bool, error) {
	marker, err := s.get(wipeMarkerKey)
	if err != nil {
		return false, err
	}
	if marker == "1" {
		return false, nil
	}

	for _, key := range append(append([]string{}, previousKeys...), StorageKey) {
		if _, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
			return false, fmt.Errorf("wipe key %s: %w", key, err)
		}
	}

	if err := s.set(wipeMarkerKey, "1"); err != nil {
		return false, err
	}
	return true, nil
}

// Load returns the stored state under the current storage key. A missing or
// unreadable record degrades to defaults instead of failing: a corrupt store
// must never take the calculator down.
func (s *Store) Load() (State, error) {
	raw, err := s.get(StorageKey)
	if err != nil {
		return DefaultState(), err
	}
	if raw == "" {
		return DefaultState(), nil
	}

	state := DefaultState()
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return DefaultState(), nil
	}
	if state.Saves == nil {
		state.Saves = snapshot.List{}
	}
	return state, nil
}

// Save upserts the full state document under the current storage key.
func (s *Store) Save(state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return s.set(StorageKey, string(raw))
}

// Clear removes the current and prior storage keys. Used by the full reset.
func (s *Store) Clear() error {
	for _, key := range append(append([]string{}, previousKeys...), StorageKey) {
		if _, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
			return fmt.Errorf("clear key %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query app_state %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert app_state %s: %w", key, err)
	}
	return nil
}
