package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Kept in string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// LandingPath returns the view a freshly authenticated principal is sent
// to. Administrators land on the management dashboard, everyone else on
// the storefront home.
func (r Role) LandingPath() string {
	if r == RoleAdmin {
		return "/dashboard"
	}
	return "/home"
}

// Identity represents the authenticated principal returned by the identity
// provider. Adapters map provider-specific claims into this shape; the raw
// attribute set is carried so the role mapper can interpret provider custom
// attributes without the adapter knowing about roles.
type Identity struct {
	Sub         string // stable subject identifier from the provider
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	Attributes  map[string]string
	ExpiresAt   time.Time // absolute expiry of the provider grant
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier. A session is always fully populated:
// identity fields, role, and the bearer credential travel together, and the
// record is deleted as a unit on logout.
type Session struct {
	ID          string    `json:"id"`
	Sub         string    `json:"sub"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        Role      `json:"role"`
	BearerToken string    `json:"bearer_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session belongs to an administrator. The role
// is fixed at login time from provider attributes and never changes for the
// session's lifetime.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
