package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and place
// ownership. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the unique identifier of the user, generated server-side.
	UserID uuid.UUID `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique email address used during authentication.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a one-way hash, never plaintext, and is never
	// serialized to JSON.
	PasswordHash string `json:"-"`

	// Image is the storage path of the user's avatar image.
	Image string `json:"image"`

	// Places holds the identifiers of places created by this user, in
	// creation order. It is the back-reference side of Place.Creator and is
	// only ever mutated inside the same transaction that inserts or deletes
	// the place row.
	Places []uuid.UUID `json:"places"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
