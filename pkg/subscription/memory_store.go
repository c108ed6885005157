package subscription

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory Store used in tests and local
// development. It provides the same atomicity guarantees the service
// expects from a real document store: create-if-absent and floored counter
// increments are single critical sections.
type MemoryStore struct {
	mu       sync.RWMutex
	records  map[string]*Subscription
	watchers map[string][]chan Subscription
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[string]*Subscription),
		watchers: make(map[string][]chan Subscription),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return sub.clone(), nil
}

func (s *MemoryStore) Create(_ context.Context, sub *Subscription) error {
	s.mu.Lock()
	if _, exists := s.records[sub.UserID]; exists {
		s.mu.Unlock()
		return ErrAlreadyExists
	}
	s.records[sub.UserID] = sub.clone()
	s.mu.Unlock()

	s.notify(sub)
	return nil
}

func (s *MemoryStore) Save(_ context.Context, sub *Subscription) error {
	s.mu.Lock()
	s.records[sub.UserID] = sub.clone()
	s.mu.Unlock()

	s.notify(sub)
	return nil
}

func (s *MemoryStore) IncrementUsage(_ context.Context, userID string, counter Counter, delta int64) (*Subscription, error) {
	s.mu.Lock()
	sub, ok := s.records[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	next := max(0, sub.Usage.Get(counter)+delta)
	switch counter {
	case CounterBoards:
		sub.Usage.BoardsUsed = next
	case CounterMembers:
		sub.Usage.MembersUsed = next
	case CounterStorage:
		sub.Usage.StorageUsedMB = next
	default:
		s.mu.Unlock()
		return nil, ErrInvalidCounter
	}
	out := sub.clone()
	s.mu.Unlock()

	s.notify(out)
	return out, nil
}

func (s *MemoryStore) Watch(ctx context.Context, userID string) (<-chan Subscription, error) {
	ch := make(chan Subscription, 8)

	s.mu.Lock()
	s.watchers[userID] = append(s.watchers[userID], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		ws := s.watchers[userID]
		for i, w := range ws {
			if w == ch {
				s.watchers[userID] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// notify fans out a snapshot to watchers. Slow consumers drop updates
// rather than block writers; each delivered value is still a consistent
// full record.
func (s *MemoryStore) notify(sub *Subscription) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.watchers[sub.UserID] {
		select {
		case ch <- *sub.clone():
		default:
		}
	}
}
