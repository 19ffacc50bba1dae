package cart

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	items     []LineItem
	expiresAt time.Time
}

// MemoryStore keeps session carts in process memory with a per-session TTL.
// It is the default store for local development and for deployments that run
// without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-memory store whose sessions expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return []LineItem{}, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return []LineItem{}, nil
	}

	out := make([]LineItem, len(entry.items))
	copy(out, entry.items)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, items []LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		delete(s.entries, sessionID)
		return nil
	}

	stored := make([]LineItem, len(items))
	copy(stored, items)
	s.entries[sessionID] = memoryEntry{
		items:     stored,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}
