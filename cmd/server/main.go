package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makerlab/printcost/internal/config"
	"github.com/makerlab/printcost/internal/counter"
	"github.com/makerlab/printcost/internal/db"
	"github.com/makerlab/printcost/internal/migrations"
	"github.com/makerlab/printcost/internal/store"
)

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	st := store.New(database)

	// One-shot wipe of prior-revision state. If storage is unavailable the
	// calculator still works for this session, so we log and continue.
	wiped, err := st.WipeOnce()
	if err != nil {
		log.Printf("storage wipe check failed: %v", err)
	} else if wiped {
		log.Printf("stored state reset to %s defaults", store.StorageKey)
	}

	state, err := st.Load()
	if err != nil {
		log.Printf("failed to load stored state, using defaults: %v", err)
		state = store.DefaultState()
	}

	srv := newServer(state, st, counter.New(cfg.CounterURL, cfg.CounterTimeout))
	r := newRouter(srv)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newRouter(srv *server) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/state", srv.handleGetState)
	r.Put("/api/state", srv.handleUpdateState)
	r.Get("/api/breakdown", srv.handleBreakdown)
	r.Get("/api/presets", srv.handlePresets)
	r.Post("/api/saves", srv.handleSave)
	r.Post("/api/saves/confirm", srv.handleConfirm)
	r.Post("/api/saves/{index}/load", srv.handleLoadSave)
	r.Delete("/api/saves/{index}", srv.handleDeleteSave)
	r.Get("/api/saves/{index}/export", srv.handleExportOne)
	r.Get("/api/export", srv.handleExportAll)
	r.Post("/api/reset", srv.handleReset)
	r.Get("/api/counter", srv.handleCounter)
	return r
}
