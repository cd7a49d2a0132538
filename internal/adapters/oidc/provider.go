package oidc

// Package oidc implements the credential exchange against the external
// identity provider. The storefront collects email and password itself, so
// the exchange uses the resource-owner password grant and verifies the
// returned ID token locally; the raw ID token doubles as the bearer
// credential the store API expects.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// Provider implements the CredentialProvider interface using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	signUpURL  string
	httpClient *http.Client

	// go-oidc provider and verifier
	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	// SignUpURL is the provider's registration endpoint. Sign-up is not part
	// of the OIDC core spec, so the endpoint is configured explicitly.
	SignUpURL  string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC credential provider.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	p := &Provider{
		signUpURL:  config.SignUpURL,
		httpClient: httpClient,
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	scopes := strings.Fields(config.Scope)
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "profile", "email"}
	}

	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       scopes,
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// Authenticate exchanges the credentials for a verified identity.
func (p *Provider) Authenticate(ctx context.Context, creds ports.Credentials) (ports.Grant, error) {
	if creds.Email == "" {
		return ports.Grant{}, apperrors.ValidationField("email", "email is required")
	}
	if creds.Password == "" {
		return ports.Grant{}, apperrors.ValidationField("password", "password is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.PasswordCredentialsToken(ctx, creds.Email, creds.Password)
	if err != nil {
		return ports.Grant{}, classifyTokenError(err)
	}

	rawID, err := getIDTokenFromToken(token)
	if err != nil {
		return ports.Grant{}, apperrors.MalformedIdentity("extract id_token", err)
	}

	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return ports.Grant{}, apperrors.MalformedIdentity("verify id_token", err)
	}

	var claims idTokenClaims
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return ports.Grant{}, apperrors.MalformedIdentity("parse id_token claims", claimsErr)
	}

	identity, err := mapIDTokenClaims(claims)
	if err != nil {
		return ports.Grant{}, err
	}

	expiresAt := idTok.Expiry
	if !token.Expiry.IsZero() && token.Expiry.Before(expiresAt) {
		expiresAt = token.Expiry
	}
	identity.ExpiresAt = expiresAt

	// The store API authorizes requests with the ID token itself, matching
	// the provider's API-gateway authorizer.
	return ports.Grant{Identity: identity, BearerToken: rawID, ExpiresAt: expiresAt}, nil
}

// SignUp registers a new account at the provider's registration endpoint.
func (p *Provider) SignUp(ctx context.Context, in ports.SignUpInput) error {
	if p.signUpURL == "" {
		return apperrors.ProviderUnavailable("sign-up endpoint not configured", nil)
	}
	if in.Email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if in.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}

	attrs := map[string]string{
		"email":        in.Email,
		"name":         in.Name,
		"phone_number": in.PhoneNumber,
		"address":      in.Address,
	}
	if in.Admin {
		attrs[adminClaim] = adminSentinel
	}

	body, err := json.Marshal(signUpRequest{
		Username:   in.Email,
		Password:   in.Password,
		Attributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("marshal sign-up request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.signUpURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sign-up request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.ProviderUnavailable("sign-up request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict("an account with this email already exists")
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.Validation(readProviderMessage(resp.Body))
	default:
		return apperrors.ProviderUnavailable(
			fmt.Sprintf("sign-up endpoint returned %d", resp.StatusCode), nil)
	}
}

// Claim names for the admin flag; kept next to the exchange so the sign-up
// payload and the login extraction cannot drift apart.
const (
	adminClaim    = "custom:isAdmin"
	adminSentinel = "1"
)

// signUpRequest is the registration payload the provider accepts.
type signUpRequest struct {
	Username   string            `json:"username"`
	Password   string            `json:"password"`
	Attributes map[string]string `json:"attributes"`
}

// idTokenClaims is the superset of standard and provider custom claims the
// storefront cares about.
type idTokenClaims struct {
	Sub         string `json:"sub"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	IsAdmin     string `json:"custom:isAdmin"`
}

// mapIDTokenClaims maps raw ID token claims onto a domain identity. A token
// without a subject is rejected outright; every other claim is optional.
func mapIDTokenClaims(c idTokenClaims) (domainauth.Identity, error) {
	if c.Sub == "" {
		return domainauth.Identity{}, apperrors.MalformedIdentity("id_token carries no subject", nil)
	}

	attrs := map[string]string{}
	if c.IsAdmin != "" {
		attrs[adminClaim] = c.IsAdmin
	}

	return domainauth.Identity{
		Sub:         c.Sub,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Attributes:  attrs,
	}, nil
}

// classifyTokenError maps oauth2 token retrieval failures onto the
// credential-exchange error taxonomy. A structured provider response means
// the provider was reachable and rejected the grant; anything else is
// treated as the provider being unavailable.
func classifyTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil &&
			(retrieveErr.Response.StatusCode == http.StatusBadRequest ||
				retrieveErr.Response.StatusCode == http.StatusUnauthorized) {
			return apperrors.InvalidCredentials("the identity provider rejected the credentials")
		}
		return apperrors.ProviderUnavailable("token endpoint error", retrieveErr)
	}
	return apperrors.ProviderUnavailable("token endpoint unreachable", err)
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}

func readProviderMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "the identity provider rejected the sign-up request"
}
