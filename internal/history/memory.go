package history

import (
	"context"
	"sync"

	"github.com/caseharbor/placement-cli/internal/model"
)

// MemoryStore keeps history in process memory. Used for tests and for
// embeddings that opt out of durable history.
type MemoryStore struct {
	mu      sync.Mutex
	records []model.HistoryRecord
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HistoryRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) SaveHistory(ctx context.Context, records []model.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]model.HistoryRecord, len(records))
	copy(s.records, records)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
