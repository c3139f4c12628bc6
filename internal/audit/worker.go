package audit

import (
	"context"
	"time"
)

// ChannelPublisher forwards audit events to an inbox drained by a Worker.
// Events are dropped when the inbox is full.
type ChannelPublisher struct {
	inbox chan<- Event
}

// NewChannelPublisher constructs a publisher writing to inbox.
func NewChannelPublisher(inbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox}
}

// Emit enqueues an audit event. A zero Timestamp is filled with the current
// time.
func (p *ChannelPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
	}
	return nil
}

// Worker consumes audit events from a channel and persists them. It keeps
// background processing testable without wiring queue implementations.
type Worker struct {
	store Store
	inbox <-chan Event
}

// NewWorker constructs a worker reading from inbox.
func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

// Run processes events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
