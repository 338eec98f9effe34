package models

import "time"

// Role is a coarse-grained authorization tag attached to a user account.
// Roles form an unordered set: no duplicates, never empty after the account
// has been created.
type Role string

const (
	// RoleUser is the base role granted to every account.
	RoleUser Role = "USER"

	// RoleAdmin grants access to management endpoints and to other
	// users' records.
	RoleAdmin Role = "ADMIN"
)

// User represents a directory account entity persisted in the "users" table.
// Identity attributes (Username, Email) are unique across all accounts; the
// ID is server-assigned and never reused.
type User struct {
	// ID is the internal unique identifier of the user.
	// Assigned by the database on insert and immutable afterwards.
	ID int64

	// Username is the unique login identifier, 3–50 characters.
	Username string

	// Email is the unique contact address, at most 100 characters.
	Email string

	// FirstName is the user's given name. Required, at most 100 characters.
	FirstName string

	// LastName is the user's family name. Required, at most 100 characters.
	LastName string

	// Enabled reports whether the account may authenticate.
	// Defaults to true for newly created accounts.
	Enabled bool

	// Roles is the set of authorization tags granted to the account.
	Roles []Role

	// CreatedAt is the server-clock timestamp of account creation. Set once.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every mutation of the record.
	UpdatedAt time.Time
}

// FullName returns the derived display name ("FirstName LastName").
// It is a read-only projection and is never persisted.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user carries the given role tag.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
