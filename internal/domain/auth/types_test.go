package auth

import (
	"testing"
	"time"
)

func TestSession_IsAdmin(t *testing.T) {
	s := Session{Role: RoleAdmin}
	if !s.IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Session{Role: RoleUser}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
}

func TestRole_LandingPath(t *testing.T) {
	if got := RoleAdmin.LandingPath(); got != "/dashboard" {
		t.Fatalf("admin landing = %q", got)
	}
	if got := RoleUser.LandingPath(); got != "/home" {
		t.Fatalf("user landing = %q", got)
	}
	// Unknown roles fall through to the storefront home, never the dashboard.
	if got := Role("other").LandingPath(); got != "/home" {
		t.Fatalf("unknown role landing = %q", got)
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{Sub: "s", Email: "e", ExpiresAt: time.Now().Add(time.Hour)}
	if id.Sub != "s" || id.Email != "e" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
