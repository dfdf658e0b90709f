package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("COUNTER_URL", "")
	t.Setenv("COUNTER_TIMEOUT", "")

	cfg := Load()

	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if cfg.CounterTimeout != defaultCounterTimeout {
		t.Fatalf("CounterTimeout = %v, want %v", cfg.CounterTimeout, defaultCounterTimeout)
	}
}

func TestLoad_CounterTimeoutFromEnv(t *testing.T) {
	t.Setenv("COUNTER_TIMEOUT", "250ms")

	if got := Load().CounterTimeout; got != 250*time.Millisecond {
		t.Fatalf("CounterTimeout = %v, want 250ms", got)
	}
}

func TestLoad_InvalidCounterTimeoutFallsBack(t *testing.T) {
	t.Setenv("COUNTER_TIMEOUT", "soon")

	if got := Load().CounterTimeout; got != defaultCounterTimeout {
		t.Fatalf("CounterTimeout = %v, want default", got)
	}
}
