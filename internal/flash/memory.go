package flash

import (
	"context"
	"sync"
)

// MemoryStore is the single-process fallback used in tests and local runs
// without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string][]Notice
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string][]Notice)}
}

func (s *MemoryStore) Push(_ context.Context, key string, n Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key] = append(s.pending[key], n)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, key string) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending[key]
	delete(s.pending, key)
	return out, nil
}
