package registry

import (
	"context"
	"fmt"
	"sync"

	"healthledger/pkg/domain"
	"healthledger/pkg/platform/sentinel"
)

// InMemoryStore keeps principals in memory. It is the reference semantics
// for the registry and the test substrate.
type InMemoryStore struct {
	mu         sync.RWMutex
	principals map[domain.PersonID]Principal
}

// NewInMemoryStore constructs an empty in-memory principal store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{principals: make(map[domain.PersonID]Principal)}
}

func (s *InMemoryStore) Put(_ context.Context, p Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[p.ID] = p
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id domain.PersonID) (Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.principals[id]; ok {
		return p, nil
	}
	return Principal{}, fmt.Errorf("principal %q not found: %w", id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) SetRole(_ context.Context, id domain.PersonID, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.principals[id]
	if !ok {
		return fmt.Errorf("principal %q not found: %w", id, sentinel.ErrNotFound)
	}
	p.Role = role
	s.principals[id] = p
	return nil
}
