// Package audit captures the trail of security-relevant actions: who did
// what, when, and with which outcome.
package audit

import "time"

// Action names the audited operations.
type Action string

const (
	ActionPatientRegistered Action = "patient_registered"
	ActionUserRegistered    Action = "user_registered"
	ActionLoginSucceeded    Action = "login_succeeded"
	ActionLoginFailed       Action = "login_failed"
	ActionTokenRefreshed    Action = "token_refreshed"
	ActionRefreshFailed     Action = "refresh_failed"
)

// Event is emitted from services to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    Action
	// Subject identifies the affected record (user id, patient id).
	Subject string
	// Email is the normalized address involved, when known.
	Email string
	// Device is a display name of the client device for login events.
	Device string
	// RequestID is the correlation id from the HTTP request context.
	RequestID string
	Decision  string
	Reason    string
}
