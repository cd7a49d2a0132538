//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// UserRecord mirrors the user row held by the upstream store API. The
// identity provider remains the source of truth for authentication; this
// record exists so orders can reference a user, and is reconciled on every
// login (create if absent, no-op if present).
type UserRecord struct {
	Sub         string    `json:"sub"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}
