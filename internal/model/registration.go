package model

import "time"

// Registration records a mentor's interest in an event as stored
// in the `registrations` table. At most one row exists per
// (event, mentor) pair; the table enforces this with a unique key
// in addition to the policy check on the register path. The
// attended flag starts false and is only ever changed by the
// event's organiser through the bulk attendance endpoint.
//
// Fields:
//  ID             – primary key identifier.
//  EventID        – event the mentor registered for.
//  MentorID       – registering user.
//  DateRegistered – server-set creation timestamp, immutable.
//  Attended       – whether the organiser confirmed attendance.
type Registration struct {
	ID             uint64    // registrations.id
	EventID        uint64    // registrations.event_id
	MentorID       uint64    // registrations.mentor_id
	DateRegistered time.Time // registrations.date_registered
	Attended       bool      // registrations.attended
}
