// Package events delivers domain events to interested consumers. Services
// publish after a successful state change and surface delivery failures to
// the caller; the preceding write is never rolled back.
package events

import (
	"context"
	"time"
)

// Event is the minimal contract a domain event satisfies.
type Event interface {
	EventID() string
	EventName() string
	OccurredOn() time.Time
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
