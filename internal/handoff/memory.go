package handoff

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/google/uuid"
)

type memoryItem struct {
	handoff   domain.Handoff
	expiresAt time.Time
}

type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, h domain.Handoff) (string, error) {
	key := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	s.items[key] = memoryItem{handoff: h, expiresAt: s.now().Add(s.ttl)}
	return key, nil
}

func (s *MemoryStore) Take(_ context.Context, key string) (*domain.Handoff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.items, key)
	if !s.now().Before(item.expiresAt) {
		return nil, ErrNotFound
	}
	h := item.handoff
	return &h, nil
}

func (s *MemoryStore) evictExpired() {
	now := s.now()
	for k, item := range s.items {
		if !now.Before(item.expiresAt) {
			delete(s.items, k)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
