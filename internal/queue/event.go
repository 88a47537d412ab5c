// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationCreatedEvent is published when a mentor registers interest in
// an event. It carries enough context for downstream consumers to notify the
// organiser or feed analytics without querying the primary database.
type RegistrationCreatedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	EventID        uint64 `json:"event_id"`
	EventName      string `json:"event_name"`
	MentorID       uint64 `json:"mentor_id"`
	Mentor         string `json:"mentor"`
	Organiser      string `json:"organiser"`
	RegisteredAt   string `json:"registered_at"`
}

// AttendanceConfirmedEvent is published after an organiser runs a bulk
// attendance reconciliation on an event.
type AttendanceConfirmedEvent struct {
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	Organiser   string `json:"organiser"`
	Entries     int    `json:"entries"`
	ConfirmedAt string `json:"confirmed_at"`
}
