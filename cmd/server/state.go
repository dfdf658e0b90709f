package main

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makerlab/printcost/internal/counter"
	"github.com/makerlab/printcost/internal/pricing"
	"github.com/makerlab/printcost/internal/store"
)

// pendingTTL bounds how long a confirmation token stays redeemable.
const pendingTTL = 5 * time.Minute

type pendingKind int

const (
	pendingOverride pendingKind = iota
	pendingDelete
	pendingReset
)

// pendingAction is one half-finished destructive operation waiting for the
// user's explicit confirmation. The blocking dialogs of a browser UI become
// a token handed out with the question and redeemed with the answer.
type pendingAction struct {
	kind      pendingKind
	name      string         // snapshot name the action concerns
	cfg       pricing.Config // configuration captured at request time (override)
	index     int            // list position (delete)
	requested time.Time
}

// server owns the single live application state. Every mutation takes the
// lock, applies a pure transition, and then persists best-effort: a failing
// store is logged and never fails the request.
type server struct {
	mu      sync.Mutex
	state   store.State
	store   *store.Store
	counter *counter.Client
	pending map[string]pendingAction
	now     func() time.Time
}

func newServer(state store.State, st *store.Store, c *counter.Client) *server {
	return &server{
		state:   state,
		store:   st,
		counter: c,
		pending: make(map[string]pendingAction),
		now:     time.Now,
	}
}

// persist writes the current state to durable storage. Failures are logged
// and swallowed so the in-memory calculator keeps working.
func (s *server) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.state); err != nil {
		log.Printf("failed to persist state: %v", err)
	}
}

// addPending registers a confirmation request and returns its token.
func (s *server) addPending(a pendingAction) string {
	s.prunePending()
	token := uuid.NewString()
	a.requested = s.now()
	s.pending[token] = a
	return token
}

// takePending redeems a token. A token can be redeemed once; unknown or
// expired tokens report false.
func (s *server) takePending(token string) (pendingAction, bool) {
	s.prunePending()
	a, ok := s.pending[token]
	if ok {
		delete(s.pending, token)
	}
	return a, ok
}

func (s *server) prunePending() {
	cutoff := s.now().Add(-pendingTTL)
	for token, a := range s.pending {
		if a.requested.Before(cutoff) {
			delete(s.pending, token)
		}
	}
}
