package cache

import (
	"context"
	"sync"
	"time"

	"retrato/pkg/platform/sentinel"
	"retrato/pkg/requestcontext"
)

type entry struct {
	payload  []byte
	storedAt time.Time
}

// MemoryStore is an unbounded in-process cache. Expired entries are removed
// when read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewMemoryStore creates a MemoryStore; ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	now := requestcontext.Now(ctx)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if now.Sub(e.storedAt) >= s.ttl {
		s.mu.Lock()
		// Another writer may have refreshed the key meanwhile.
		if cur, ok := s.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	return e.payload, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{payload: payload, storedAt: requestcontext.Now(ctx)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
