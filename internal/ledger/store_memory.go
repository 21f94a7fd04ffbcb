package ledger

import (
	"context"
	"fmt"
	"sync"

	"healthledger/pkg/domain"
	"healthledger/pkg/platform/sentinel"
)

// InMemoryStore keeps records in a dense slice and the replay set in a map.
// The slice index is the record ID, so density holds by construction.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Record
	seen    map[domain.Fingerprint]struct{}
}

// NewInMemoryStore constructs an empty in-memory ledger.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{seen: make(map[domain.Fingerprint]struct{})}
}

func (s *InMemoryStore) Append(_ context.Context, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[rec.Fingerprint]; dup {
		return 0, fmt.Errorf("fingerprint already committed: %w", sentinel.ErrConflict)
	}
	rec.ID = int64(len(s.records))
	s.records = append(s.records, rec)
	s.seen[rec.Fingerprint] = struct{}{}
	return rec.ID, nil
}

func (s *InMemoryStore) HasFingerprint(_ context.Context, fp domain.Fingerprint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[fp]
	return ok, nil
}

func (s *InMemoryStore) Get(_ context.Context, id int64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= int64(len(s.records)) {
		return Record{}, fmt.Errorf("record %d not found: %w", id, sentinel.ErrNotFound)
	}
	return s.records[id], nil
}

func (s *InMemoryStore) ListByPatient(_ context.Context, patient domain.PersonID) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.records {
		if rec.Patient == patient {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}
