package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword exchanges credentials with the OIDC identity
	// provider's password grant.
	AuthModePassword AuthMode = "password"
	// AuthModeMock uses in-memory dev accounts (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, mock)", v)
	}
}

// OIDCConfig contains identity provider configuration for the password
// grant exchange.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	// SignUpURL is the provider's registration endpoint. Leave empty to
	// disable self-service signup.
	SignUpURL string `env:"SIGNUP_URL"`
}

// DevAuthConfig seeds the in-memory provider used when AUTH_MODE=mock.
// Two accounts cover both sides of the view resolver during development.
type DevAuthConfig struct {
	AdminEmail    string `env:"ADMIN_EMAIL"    envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`
	UserEmail     string `env:"USER_EMAIL"     envDefault:"user@example.com"`
	UserPassword  string `env:"USER_PASSWORD"  envDefault:"user"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which credential provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// OIDC configuration (used when Mode=password).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminAttribute is the provider custom attribute that marks
	// administrators.
	AdminAttribute string `env:"AUTH_ADMIN_ATTRIBUTE" envDefault:"custom:isAdmin"`

	// AdminSentinel is the exact attribute value that grants the admin
	// role. Any other value, or an absent attribute, maps to a regular
	// user.
	AdminSentinel string `env:"AUTH_ADMIN_SENTINEL" envDefault:"1"`
}
