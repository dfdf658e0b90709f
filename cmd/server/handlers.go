package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/makerlab/printcost/internal/export"
	"github.com/makerlab/printcost/internal/pricing"
	"github.com/makerlab/printcost/internal/snapshot"
	"github.com/makerlab/printcost/internal/store"
)

type saveInfo struct {
	Index   int       `json:"index"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"savedAt"`
}

type stateResponse struct {
	Config      pricing.Config    `json:"config"`
	ProductName string            `json:"productName"`
	Saves       []saveInfo        `json:"saves"`
	Breakdown   pricing.Breakdown `json:"breakdown"`
}

// confirmRequired is the 409 payload for destructive actions: the question
// (bilingual, like the UI shows it) plus the token that answers it.
type confirmRequired struct {
	ConfirmToken string `json:"confirmToken"`
	Evicting     string `json:"evicting,omitempty"`
	Message      string `json:"message"`
}

type confirmResult struct {
	Outcome string        `json:"outcome"`
	State   stateResponse `json:"state"`
}

// stateResponseLocked builds the full API view of the current state. The
// breakdown is recomputed on every call; nothing is cached. Callers must
// hold s.mu.
func (s *server) stateResponseLocked() stateResponse {
	saves := make([]saveInfo, 0, len(s.state.Saves))
	for i, snap := range s.state.Saves {
		saves = append(saves, saveInfo{Index: i, Name: snap.Name, SavedAt: snap.SavedAt})
	}
	return stateResponse{
		Config:      s.state.Config,
		ProductName: s.state.ProductName,
		Saves:       saves,
		Breakdown:   pricing.Compute(s.state.Config),
	}
}

func (s *server) handleGetState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := s.stateResponseLocked()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleUpdateState(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Config      *pricing.Config `json:"config"`
		ProductName *string         `json:"productName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if req.Config != nil {
		s.state.Config = *req.Config
	}
	if req.ProductName != nil {
		s.state.ProductName = *req.ProductName
	}
	s.persist()
	resp := s.stateResponseLocked()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	breakdown := pricing.Compute(s.state.Config)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, breakdown)
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.Presets)
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(s.state.ProductName)
	}
	if name == "" {
		http.Error(w, "product name is required", http.StatusBadRequest)
		return
	}

	list, res := snapshot.Save(s.state.Saves, name, s.state.Config, s.now())
	if res.NeedsConfirm {
		token := s.addPending(pendingAction{kind: pendingOverride, name: name, cfg: s.state.Config})
		writeJSON(w, http.StatusConflict, confirmRequired{
			ConfirmToken: token,
			Evicting:     res.Evicting,
			Message: fmt.Sprintf(
				"You already have %d saves. Override the oldest save (%q)? (May %d saves ka na. I-override ang pinakalumang save?)",
				snapshot.MaxSnapshots, res.Evicting, snapshot.MaxSnapshots),
		})
		return
	}

	s.state.Saves = list
	s.state.ProductName = name
	s.persist()
	writeJSON(w, http.StatusCreated, s.stateResponseLocked())
}

func (s *server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token     string `json:"token"`
		Confirmed bool   `json:"confirmed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.takePending(req.Token)
	if !ok {
		http.Error(w, "unknown or expired confirmation token", http.StatusNotFound)
		return
	}

	if !req.Confirmed {
		writeJSON(w, http.StatusOK, confirmResult{Outcome: "aborted", State: s.stateResponseLocked()})
		return
	}

	switch action.kind {
	case pendingOverride:
		s.state.Saves = snapshot.SaveConfirmed(s.state.Saves, action.name, action.cfg, s.now())
		s.state.ProductName = action.name
		s.persist()
		writeJSON(w, http.StatusOK, confirmResult{Outcome: "saved", State: s.stateResponseLocked()})

	case pendingDelete:
		// The list may have changed since the confirmation was requested;
		// a stale position fails safely instead of deleting the wrong save.
		if action.index >= len(s.state.Saves) || s.state.Saves[action.index].Name != action.name {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		list, err := snapshot.Delete(s.state.Saves, action.index, true)
		if err != nil {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		s.state.Saves = list
		s.persist()
		writeJSON(w, http.StatusOK, confirmResult{Outcome: "deleted", State: s.stateResponseLocked()})

	case pendingReset:
		s.state = store.DefaultState()
		if s.store != nil {
			if err := s.store.Clear(); err != nil {
				// The in-memory reset already happened; stale stored keys
				// only matter until the next persist succeeds.
				log.Printf("failed to clear stored state: %v", err)
			}
		}
		s.persist()
		writeJSON(w, http.StatusOK, confirmResult{Outcome: "reset", State: s.stateResponseLocked()})
	}
}

func (s *server) handleLoadSave(w http.ResponseWriter, r *http.Request) {
	idx, err := snapshotIndex(r)
	if err != nil {
		http.Error(w, "invalid snapshot index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, name, err := snapshot.Load(s.state.Saves, idx)
	if err != nil {
		http.Error(w, "snapshot not found", http.StatusNotFound)
		return
	}

	s.state.Config = cfg
	s.state.ProductName = name
	s.persist()
	writeJSON(w, http.StatusOK, s.stateResponseLocked())
}

func (s *server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	idx, err := snapshotIndex(r)
	if err != nil {
		http.Error(w, "invalid snapshot index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.state.Saves) {
		http.Error(w, "snapshot not found", http.StatusNotFound)
		return
	}

	name := s.state.Saves[idx].Name
	token := s.addPending(pendingAction{kind: pendingDelete, name: name, index: idx})
	writeJSON(w, http.StatusConflict, confirmRequired{
		ConfirmToken: token,
		Message:      fmt.Sprintf("Delete save %q? (Burahin ang save na ito?)", name),
	})
}

func (s *server) handleExportOne(w http.ResponseWriter, r *http.Request) {
	idx, err := snapshotIndex(r)
	if err != nil {
		http.Error(w, "invalid snapshot index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if idx < 0 || idx >= len(s.state.Saves) {
		s.mu.Unlock()
		http.Error(w, "snapshot not found", http.StatusNotFound)
		return
	}
	snap := s.state.Saves[idx]
	s.mu.Unlock()

	writeCSV(w, export.Document(snapshot.List{snap}), export.Filename(snap.Name))
}

func (s *server) handleExportAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	saves := s.state.Saves
	s.mu.Unlock()

	if len(saves) == 0 {
		http.Error(w, "no saves to download", http.StatusNotFound)
		return
	}

	writeCSV(w, export.Document(saves), export.BulkFilename(s.now()))
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	token := s.addPending(pendingAction{kind: pendingReset})
	s.mu.Unlock()

	writeJSON(w, http.StatusConflict, confirmRequired{
		ConfirmToken: token,
		Message:      "Reset EVERYTHING (all fields + saves)? (Ire-reset lahat: fields at saves. Tuloy?)",
	})
}

func (s *server) handleCounter(w http.ResponseWriter, r *http.Request) {
	value, ok := s.counter.Fetch(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"value": value})
}

func snapshotIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeCSV sends a fully built CSV document. The content is complete before
// the first byte goes out, so a failed download never leaves a partial file.
func writeCSV(w http.ResponseWriter, doc, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = io.WriteString(w, doc)
}
