package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
// A user is either an organisation (IsOrg true) or a mentor.
// Exactly one profile variant exists per user, created in the same
// transaction as the user row, and the role flag never changes
// afterwards.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name, also used in URLs.
//  Email        – contact email address.
//  PasswordHash – bcrypt hashed password.
//  IsOrg        – true when the user is an organisation.
//  IsSuperuser  – true when the user may administer categories.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsOrg        bool      // users.is_org
	IsSuperuser  bool      // users.is_superuser
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role names stored in the JWT "role" claim.
const (
	RoleOrg    = "ORG"
	RoleMentor = "MENTOR"
)

// Role returns the wire-level role name encoded in JWT claims.
func (u User) Role() string {
	if u.IsOrg {
		return RoleOrg
	}
	return RoleMentor
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation. The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
