package repository

import (
	"context"
	"sync"
	"time"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/pkg/metrics"
)

// defaultCapacity bounds how many results the store retains before
// evicting the oldest.
const defaultCapacity = 1024

// MemStore is an in-memory Store with bounded retention. Results are
// kept in insertion order so Recent reads are a reverse slice walk.
type MemStore struct {
	mu       sync.RWMutex
	results  map[string]model.MatchResult
	order    []string
	capacity int
}

// NewMemStore creates an in-memory match result store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		results:  make(map[string]model.MatchResult),
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put records a completed match result, evicting the oldest result
// when the store is at capacity.
func (s *MemStore) Put(ctx context.Context, result model.MatchResult) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.ID]; !exists {
		s.order = append(s.order, result.ID)
		for len(s.order) > s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.results, oldest)
		}
	}
	s.results[result.ID] = result

	metrics.UpdateStoreResultsTotal(len(s.order))
	return nil
}

// Get returns the result for a match ID.
func (s *MemStore) Get(ctx context.Context, id string) (model.MatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.MatchResult{}, ErrNotFound
	}
	return result, nil
}

// Recent returns up to limit results, most recent first.
func (s *MemStore) Recent(ctx context.Context, limit int) ([]model.MatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit <= 0 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.order) {
		limit = len(s.order)
	}
	out := make([]model.MatchResult, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.results[s.order[i]])
	}
	return out, nil
}

// Count returns the number of results held in the store.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
