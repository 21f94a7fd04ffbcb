package consent

import (
	"context"
	"sync"

	"healthledger/pkg/domain"
)

// InMemoryStore keeps the grant matrix as a two-level map. Keys are never
// deleted: a revoked grant is stored as false, matching the append-only key
// lifecycle of the matrix.
type InMemoryStore struct {
	mu     sync.RWMutex
	grants map[domain.PersonID]map[domain.PersonID]bool
}

// NewInMemoryStore constructs an empty in-memory grant store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{grants: make(map[domain.PersonID]map[domain.PersonID]bool)}
}

func (s *InMemoryStore) SetGrant(_ context.Context, patient, doctor domain.PersonID, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grants[patient] == nil {
		s.grants[patient] = make(map[domain.PersonID]bool)
	}
	s.grants[patient][doctor] = granted
	return nil
}

func (s *InMemoryStore) IsGranted(_ context.Context, patient, doctor domain.PersonID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grants[patient][doctor], nil
}
