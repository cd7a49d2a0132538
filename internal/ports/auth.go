package ports

// Package ports defines interfaces (hexagonal ports) for the navigation
// core. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"time"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
)

// Credentials carries a login submission.
type Credentials struct {
	Email    string
	Password string
}

// Grant is the result of a successful credential exchange: the provider's
// identity claims plus the bearer credential later presented to the store
// API on the identity's behalf.
type Grant struct {
	Identity    domainauth.Identity
	BearerToken string
	ExpiresAt   time.Time
}

// SignUpInput carries a registration submission forwarded to the provider.
type SignUpInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Address     string
	Admin       bool
}

// CredentialProvider exchanges submitted credentials for an identity with
// the external identity provider. Implementations must map failures onto
// the apperrors taxonomy: invalid_credentials, provider_unavailable,
// malformed_identity.
type CredentialProvider interface {
	// Authenticate verifies the credentials and returns the grant.
	Authenticate(ctx context.Context, creds Credentials) (Grant, error)

	// SignUp registers a new account with the provider.
	SignUp(ctx context.Context, in SignUpInput) error
}

// SessionStore persists and retrieves user sessions. Mutations write
// through to durable storage so every tab of the origin (and a page
// reload) sees the same session without re-authenticating.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider attributes to an application role.
type RoleMapper interface {
	Map(attrs map[string]string) domainauth.Role
}
