// Package session stores per-session dialog state. The dialog core never
// touches storage directly; it receives a state, returns the next one, and
// the transport persists it here.
package session

import (
	"context"
	"sync"

	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/pkg/metrics"
)

// Store maps session identifiers to dialog state.
type Store interface {
	// Get returns the state for id; the bool reports whether it existed.
	Get(ctx context.Context, id string) (model.DialogState, bool, error)

	// Put stores the state under id, replacing any previous state.
	Put(ctx context.Context, id string, state model.DialogState) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// MemoryStore keeps sessions in process memory for the server's lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.DialogState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]model.DialogState),
	}
}

// Get returns a deep copy so callers cannot mutate stored state in place.
func (s *MemoryStore) Get(_ context.Context, id string) (model.DialogState, bool, error) {
	s.mu.RLock()
	state, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return model.DialogState{}, false, nil
	}
	return state.Clone(), true, nil
}

// Put stores a deep copy of the state.
func (s *MemoryStore) Put(_ context.Context, id string, state model.DialogState) error {
	s.mu.Lock()
	_, existed := s.sessions[id]
	s.sessions[id] = state.Clone()
	s.mu.Unlock()

	if !existed {
		metrics.SessionsActive.Inc()
	}
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
