package devauth

// Package devauth provides a simple, config-driven CredentialProvider for
// local development. Accounts live in memory; no identity provider is
// contacted.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// Account is a single static dev account.
type Account struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Address     string
	Admin       bool
}

// Config controls the dev auth provider behavior.
type Config struct {
	Accounts        []Account
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.CredentialProvider for local development.
// Authenticate checks the in-memory account table; SignUp appends to it.
type Provider struct {
	mu              sync.Mutex
	accounts        map[string]Account // keyed by lowercased email
	sessionDuration time.Duration
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if len(cfg.Accounts) == 0 {
		return nil, errors.New("dev auth: at least one account is required")
	}
	accounts := make(map[string]Account, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		if a.Email == "" || a.Password == "" {
			return nil, errors.New("dev auth: account email and password are required")
		}
		accounts[strings.ToLower(a.Email)] = a
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{accounts: accounts, sessionDuration: dur}, nil
}

// Authenticate looks the credentials up in the account table.
func (p *Provider) Authenticate(_ context.Context, creds ports.Credentials) (ports.Grant, error) {
	if creds.Email == "" || creds.Password == "" {
		return ports.Grant{}, apperrors.ValidationField("credentials", "email and password are required")
	}

	p.mu.Lock()
	account, ok := p.accounts[strings.ToLower(creds.Email)]
	p.mu.Unlock()
	if !ok || account.Password != creds.Password {
		return ports.Grant{}, apperrors.InvalidCredentials("unknown email or wrong password")
	}

	token, err := randomString(32)
	if err != nil {
		return ports.Grant{}, apperrors.Internal("generate dev token", err)
	}

	expiresAt := time.Now().Add(p.sessionDuration)
	return ports.Grant{
		Identity:    identityFor(account, expiresAt),
		BearerToken: "dev-" + token,
		ExpiresAt:   expiresAt,
	}, nil
}

// SignUp adds an account to the in-memory table.
func (p *Provider) SignUp(_ context.Context, in ports.SignUpInput) error {
	if in.Email == "" || in.Password == "" {
		return apperrors.ValidationField("credentials", "email and password are required")
	}

	key := strings.ToLower(in.Email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[key]; exists {
		return apperrors.Conflict("an account with this email already exists")
	}
	p.accounts[key] = Account{
		Email:       in.Email,
		Password:    in.Password,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Admin:       in.Admin,
	}
	return nil
}

func identityFor(a Account, expiresAt time.Time) domainauth.Identity {
	attrs := map[string]string{}
	if a.Admin {
		attrs["custom:isAdmin"] = "1"
	}
	return domainauth.Identity{
		Sub:         "dev-" + strings.ToLower(a.Email),
		Name:        a.Name,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Address:     a.Address,
		Attributes:  attrs,
		ExpiresAt:   expiresAt,
	}
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least n base64 URL chars
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		// pad
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
