package model

// MentorProfile is the one-to-one extension of a mentor user as
// stored in the `mentor_profiles` table. Coordinates are used by
// the proximity search; a freshly created profile defaults to the
// same city-center location that events default to. Skills are
// stored as join rows in `mentor_skills` and are loaded separately
// by the repository.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the profile (unique).
//  Name      – display name of the mentor.
//  Bio       – free-text biography.
//  Latitude  – latitude of the mentor's location.
//  Longitude – longitude of the mentor's location.
type MentorProfile struct {
	ID        uint64  // mentor_profiles.id
	UserID    uint64  // mentor_profiles.user_id
	Name      string  // mentor_profiles.name
	Bio       string  // mentor_profiles.bio
	Latitude  float64 // mentor_profiles.latitude
	Longitude float64 // mentor_profiles.longitude
}

// OrgProfile is the one-to-one extension of an organisation user
// as stored in the `org_profiles` table. The company name takes
// part in free-text event search.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner of the profile (unique).
//  CompanyName – registered company name.
//  ContactName – name of the primary contact person.
//  OrgBio      – free-text description of the organisation.
type OrgProfile struct {
	ID          uint64 // org_profiles.id
	UserID      uint64 // org_profiles.user_id
	CompanyName string // org_profiles.company_name
	ContactName string // org_profiles.contact_name
	OrgBio      string // org_profiles.org_bio
}
