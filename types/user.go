package types

import "time"

// Role is the authorization role carried by a user and its tokens.
// Roles are compared by equality only; there is no ordering between them.
type Role string

const (
	RoleCreator  Role = "creator"
	RoleConsumer Role = "consumer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCreator, RoleConsumer:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the opaque unique identifier of the user.
	ID string `json:"id" db:"id"`

	// Username is the display name chosen at registration.
	Username string `json:"username" db:"username"`

	// Email is the user's email address. It is unique across all users.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization role ("creator" or "consumer").
	Role Role `json:"role" db:"role"`

	// PasswordHash stores the salted hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
