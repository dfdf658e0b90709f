// Package snapshot manages the list of named configuration saves. All
// operations are pure functions over a list value; the caller owns the list
// and decides when to persist it.
package snapshot

import (
	"errors"
	"time"

	"github.com/makerlab/printcost/internal/pricing"
)

// MaxSnapshots is the capacity of the save list.
const MaxSnapshots = 3

// ErrNotFound is returned when a snapshot index is out of range, typically
// because the list changed since the index was read.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a named, timestamped, immutable copy of a configuration.
type Snapshot struct {
	Name    string         `json:"name"`
	SavedAt time.Time      `json:"ts"`
	Config  pricing.Config `json:"data"`
}

// List is an ordered sequence of at most MaxSnapshots snapshots,
// most-recently-saved first.
type List []Snapshot

// SaveResult reports the outcome of a Save attempt.
type SaveResult struct {
	// Saved is true when the snapshot was added to the list.
	Saved bool
	// NeedsConfirm is true when the list is full and saving requires the
	// caller to confirm evicting the oldest entry.
	NeedsConfirm bool
	// Evicting names the entry that a confirmed save would push out.
	Evicting string
}

// Save prepends a new snapshot when the list has room. When the list is
// already at capacity it returns the list unchanged and signals that
// confirmation is required, naming the entry that would be evicted. The save
// completes only through SaveConfirmed.
func Save(list List, name string, cfg pricing.Config, now time.Time) (List, SaveResult) {
	if len(list) >= MaxSnapshots {
		return list, SaveResult{NeedsConfirm: true, Evicting: list[len(list)-1].Name}
	}

	out := make(List, 0, len(list)+1)
	out = append(out, Snapshot{Name: name, SavedAt: now, Config: cfg})
	out = append(out, list...)
	return out, SaveResult{Saved: true}
}

// SaveConfirmed prepends a new snapshot and truncates the list to capacity,
// evicting the oldest entry. Existing entries shift down one position.
func SaveConfirmed(list List, name string, cfg pricing.Config, now time.Time) List {
	out := make(List, 0, len(list)+1)
	out = append(out, Snapshot{Name: name, SavedAt: now, Config: cfg})
	out = append(out, list...)
	if len(out) > MaxSnapshots {
		out = out[:MaxSnapshots]
	}
	return out
}

// Load returns a copy of the stored configuration at idx together with the
// snapshot's name, so the caller can repopulate the product-name field.
func Load(list List, idx int) (pricing.Config, string, error) {
	if idx < 0 || idx >= len(list) {
		return pricing.Config{}, "", ErrNotFound
	}
	return list[idx].Config, list[idx].Name, nil
}

// Delete removes the entry at idx, preserving the relative order of the
// rest. Without confirmation it returns the list unchanged.
func Delete(list List, idx int, confirmed bool) (List, error) {
	if idx < 0 || idx >= len(list) {
		return list, ErrNotFound
	}
	if !confirmed {
		return list, nil
	}

	out := make(List, 0, len(list)-1)
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	return out, nil
}
