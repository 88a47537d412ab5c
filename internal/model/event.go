package model

import "time"

// Defaults applied when an event is created without an explicit
// location. They point at the Perth city center.
const (
	DefaultLocation  = "Perth, WA, Australia"
	DefaultLatitude  = -31.95351
	DefaultLongitude = 115.85705
)

// Event represents a row in the `events` table. Events are owned
// by an organisation user and carry zero or more categories via
// the `event_categories` join table. DateCreated is set by the
// server on insert and never changes; the organiser link is
// likewise immutable.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – event title (max 120 chars).
//  Description – longer description (max 500 chars).
//  ImageURL    – URL of the event image (max 120 chars).
//  IsOpen      – whether the event still accepts registrations.
//  DateCreated – server-set creation timestamp.
//  StartsAt    – when the event begins.
//  EndsAt      – when the event ends (must be after StartsAt).
//  Location    – human-readable location text (max 300 chars).
//  Latitude    – latitude used by proximity search.
//  Longitude   – longitude used by proximity search.
//  OrganiserID – owning organisation user.
type Event struct {
	ID          uint64    // events.id
	Name        string    // events.name
	Description string    // events.description
	ImageURL    string    // events.image_url
	IsOpen      bool      // events.is_open
	DateCreated time.Time // events.date_created
	StartsAt    time.Time // events.starts_at
	EndsAt      time.Time // events.ends_at
	Location    string    // events.location
	Latitude    float64   // events.latitude
	Longitude   float64   // events.longitude
	OrganiserID uint64    // events.organiser_id
}

// Category is a row in the `categories` table. Names are unique.
// Categories tag events and double as mentor skills.
type Category struct {
	ID   uint64 // categories.id
	Name string // categories.name
}
