package events

import (
	"context"
	"sync"
)

// InMemoryPublisher records published events. Used in tests and as the
// default sink when no broker is configured.
type InMemoryPublisher struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryPublisher creates an empty in-memory publisher.
func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

func (p *InMemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *InMemoryPublisher) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Event{}, p.events...)
}

// Named returns the published events carrying the given name.
func (p *InMemoryPublisher) Named(name string) []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var matched []Event
	for _, event := range p.events {
		if event.EventName() == name {
			matched = append(matched, event)
		}
	}
	return matched
}
