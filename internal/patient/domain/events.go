package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventPatientRegistered names the registration event on the wire.
const EventPatientRegistered = "patient.registered"

// Event is the common envelope embedded by every domain event. Fields are
// primitives so events serialize cleanly at the publishing boundary.
type Event struct {
	ID         string    `json:"event_id"`
	Name       string    `json:"event_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e Event) EventID() string       { return e.ID }
func (e Event) EventName() string     { return e.Name }
func (e Event) OccurredOn() time.Time { return e.OccurredAt }

// PatientRegisteredEvent records a successful patient registration.
type PatientRegisteredEvent struct {
	Event
	PatientID string `json:"patient_id"`
	FullName  string `json:"full_name"`
	DNI       string `json:"dni"`
	Email     string `json:"email"`
}

// NewPatientRegisteredEvent builds the event from an already-registered Patient.
func NewPatientRegisteredEvent(p *Patient, now time.Time) PatientRegisteredEvent {
	return PatientRegisteredEvent{
		Event:     Event{ID: uuid.NewString(), Name: EventPatientRegistered, OccurredAt: now},
		PatientID: p.ID().String(),
		FullName:  p.FullName().Value(),
		DNI:       p.DNI().Value(),
		Email:     p.ContactInfo().Email().Value(),
	}
}
