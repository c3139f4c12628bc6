package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps audit events in process memory, grouped by subject.
type InMemoryStore struct {
	mu      sync.RWMutex
	events  map[string][]Event
	ordered []Event
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Subject] = append(s.events[event.Subject], event)
	s.ordered = append(s.ordered, event)
	return nil
}

func (s *InMemoryStore) ListBySubject(_ context.Context, subject string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[subject]...), nil
}

// ListRecent returns the newest events, most recent last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit >= len(s.ordered) {
		return append([]Event{}, s.ordered...), nil
	}
	return append([]Event{}, s.ordered[len(s.ordered)-limit:]...), nil
}

// Clear removes all events. Intended for tests.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]Event)
	s.ordered = nil
}
