package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialProvider = (*MockCredentialProvider)(nil)
	_ ports.SessionStore       = (*MemorySessionStore)(nil)
	_ ports.RoleMapper         = (*AttributeRoleMapper)(nil)
)

// MockCredentialProvider simulates an identity provider for tests.
type MockCredentialProvider struct {
	AuthenticateFunc func(ctx context.Context, creds ports.Credentials) (ports.Grant, error)
	SignUpFunc       func(ctx context.Context, in ports.SignUpInput) error

	// DefaultGrant is returned by Authenticate when AuthenticateFunc is nil.
	DefaultGrant ports.Grant
}

// NewMockCredentialProvider creates a MockCredentialProvider with sensible defaults.
func NewMockCredentialProvider() *MockCredentialProvider {
	return &MockCredentialProvider{
		DefaultGrant: ports.Grant{
			Identity: domainauth.Identity{
				Sub:        "mock-sub-1",
				Name:       "Mock User",
				Email:      "mock.user@example.com",
				Attributes: map[string]string{},
			},
			BearerToken: "mock-bearer-token",
		},
	}
}

func (m *MockCredentialProvider) Authenticate(ctx context.Context, creds ports.Credentials) (ports.Grant, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, creds)
	}

	grant := m.DefaultGrant
	if grant.Identity.Sub == "" {
		grant.Identity.Sub = "mock-sub-1"
	}
	if grant.BearerToken == "" {
		grant.BearerToken = "mock-bearer-token"
	}
	grant.ExpiresAt = time.Now().Add(time.Hour)
	grant.Identity.ExpiresAt = grant.ExpiresAt
	return grant, nil
}

func (m *MockCredentialProvider) SignUp(ctx context.Context, in ports.SignUpInput) error {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, in)
	}
	return nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// AttributeRoleMapper grants admin when the configured attribute equals the
// configured value exactly.
type AttributeRoleMapper struct {
	Attribute string
	Value     string
}

func (m AttributeRoleMapper) Map(attrs map[string]string) domainauth.Role {
	if m.Attribute != "" && attrs[m.Attribute] == m.Value {
		return domainauth.RoleAdmin
	}
	return domainauth.RoleUser
}

// AdminGrant builds a grant whose identity carries the admin attribute.
func AdminGrant(sub string) ports.Grant {
	exp := time.Now().Add(time.Hour)
	return ports.Grant{
		Identity: domainauth.Identity{
			Sub:        sub,
			Name:       "Admin " + sub,
			Email:      fmt.Sprintf("%s@example.com", sub),
			Attributes: map[string]string{"custom:isAdmin": "1"},
			ExpiresAt:  exp,
		},
		BearerToken: "bearer-" + sub,
		ExpiresAt:   exp,
	}
}
