package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/makerlab/printcost/internal/pricing"
	"github.com/makerlab/printcost/internal/snapshot"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating app_state table: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return New(db)
}

func TestLoad_MissingRecordReturnsDefaults(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if state.SpoolPrice != 800 || state.PricingMode != pricing.PricingDerive {
		t.Fatalf("unexpected defaults: %+v", state.Config)
	}
	if state.Saves == nil || len(state.Saves) != 0 {
		t.Fatalf("expected empty save list, got %+v", state.Saves)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	state := DefaultState()
	state.PartWeight = 42.5
	state.ElectricityMode = pricing.ElectricityKilowatt
	state.KwPreset = "bambu_p1s"
	state.ProductName = "Benchy"
	state.Saves = snapshot.List{{
		Name:    "Benchy",
		SavedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Config:  state.Config,
	}}

	if err := s.Save(state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.PartWeight != 42.5 || loaded.ElectricityMode != pricing.ElectricityKilowatt {
		t.Fatalf("config did not round-trip: %+v", loaded.Config)
	}
	if loaded.ProductName != "Benchy" || len(loaded.Saves) != 1 {
		t.Fatalf("state did not round-trip: %+v", loaded)
	}
	if loaded.Saves[0].Config.PartWeight != 42.5 {
		t.Fatalf("snapshot config did not round-trip: %+v", loaded.Saves[0])
	}
}

func TestLoad_CorruptRecordDegradesToDefaults(t *testing.T) {
	s := newTestStore(t)

	if err := s.set(StorageKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	state, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.SpoolPrice != 800 {
		t.Fatalf("expected defaults after corrupt record, got %+v", state.Config)
	}
}

func TestWipeOnce_RemovesOldKeysExactlyOnce(t *testing.T) {
	s := newTestStore(t)

	if err := s.set("printcost_v1_4", `{"old": true}`); err != nil {
		t.Fatalf("seed old key: %v", err)
	}
	if err := s.set(StorageKey, `{"stale": true}`); err != nil {
		t.Fatalf("seed current key: %v", err)
	}

	wiped, err := s.WipeOnce()
	if err != nil {
		t.Fatalf("wipe: %v", err)
	}
	if !wiped {
		t.Fatalf("first wipe should report wiped")
	}

	for _, key := range []string{"printcost_v1_4", StorageKey} {
		value, err := s.get(key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if value != "" {
			t.Fatalf("key %s survived the wipe: %q", key, value)
		}
	}

	// A record written after the wipe must survive later startups.
	if err := s.Save(DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	wiped, err = s.WipeOnce()
	if err != nil {
		t.Fatalf("second wipe: %v", err)
	}
	if wiped {
		t.Fatalf("wipe ran twice")
	}
	state, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.SpoolPrice != 800 {
		t.Fatalf("post-wipe record lost: %+v", state.Config)
	}
}

func TestClear_RemovesStoredState(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	value, err := s.get(StorageKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "" {
		t.Fatalf("state survived clear: %q", value)
	}
}
