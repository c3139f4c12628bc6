package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event names as they appear on the wire.
const (
	EventUserRegistered = "auth.user_registered"
	EventUserLoggedIn   = "auth.user_logged_in"
)

// Event is the common envelope embedded by every domain event. Fields are
// primitives so events serialize cleanly at the publishing boundary.
type Event struct {
	ID         string    `json:"event_id"`
	Name       string    `json:"event_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(name string, now time.Time) Event {
	return Event{ID: uuid.NewString(), Name: name, OccurredAt: now}
}

func (e Event) EventID() string       { return e.ID }
func (e Event) EventName() string     { return e.Name }
func (e Event) OccurredOn() time.Time { return e.OccurredAt }

// UserRegisteredEvent records a successful registration.
type UserRegisteredEvent struct {
	Event
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserRegisteredEvent builds the event from already-validated values.
func NewUserRegisteredEvent(id UserID, username Username, email Email, now time.Time) UserRegisteredEvent {
	return UserRegisteredEvent{
		Event:    newEvent(EventUserRegistered, now),
		UserID:   id.String(),
		Username: username.Value(),
		Email:    email.Value(),
	}
}

// UserLoggedInEvent records a successful authentication. Device carries a
// human-readable description of the client ("Chrome on Mac OS X") when the
// transport captured a user-agent; it may be empty.
type UserLoggedInEvent struct {
	Event
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Device string `json:"device,omitempty"`
}

// NewUserLoggedInEvent builds the event from already-validated values.
func NewUserLoggedInEvent(id UserID, email Email, device string, now time.Time) UserLoggedInEvent {
	return UserLoggedInEvent{
		Event:  newEvent(EventUserLoggedIn, now),
		UserID: id.String(),
		Email:  email.Value(),
		Device: device,
	}
}
