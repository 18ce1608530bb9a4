package lockout

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a thread-safe in-memory lockout store for tests and
// single-process deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[uuid.UUID]State
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory lockout store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[uuid.UUID]State)}
}

// Get returns the account's lockout state; unknown accounts are clean.
func (s *MemoryStore) Get(ctx context.Context, userID uuid.UUID) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID], nil
}

// Put replaces the account's lockout state. A zero state drops the record.
func (s *MemoryStore) Put(ctx context.Context, userID uuid.UUID, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state.clean() {
		delete(s.states, userID)
		return nil
	}
	s.states[userID] = state
	return nil
}
