package config

import (
	"log"
	"os"
	"time"
)

const (
	defaultDBPath         = "./printcost.db"
	defaultPort           = "8080"
	defaultCounterTimeout = 4 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath         string
	Port           string
	CounterURL     string
	CounterTimeout time.Duration
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath:         os.Getenv("DB_PATH"),
		Port:           os.Getenv("PORT"),
		CounterURL:     os.Getenv("COUNTER_URL"),
		CounterTimeout: defaultCounterTimeout,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if raw := os.Getenv("COUNTER_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			log.Printf("warning: ignoring invalid COUNTER_TIMEOUT %q", raw)
		} else {
			cfg.CounterTimeout = d
		}
	}

	if cfg.CounterURL == "" {
		log.Print("COUNTER_URL is not set; usage counter disabled")
	}

	return cfg
}
