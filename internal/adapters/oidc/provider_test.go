package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
)

func TestNewProvider_Success(t *testing.T) {
	provider := createTestProvider(t, "")
	assert.NotNil(t, provider)
	assert.NotEmpty(t, provider.config.Endpoint.TokenURL)
	assert.Equal(t, []string{"openid", "profile", "email"}, provider.config.Scopes)
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name:   "missing client ID",
			config: ProviderConfig{DiscoveryURL: "http://example.com"},
			errMsg: "client ID is required",
		},
		{
			name:   "missing discovery URL",
			config: ProviderConfig{ClientID: "client"},
			errMsg: "discovery URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Authenticate_ValidationErrors(t *testing.T) {
	provider := createTestProvider(t, "")
	ctx := context.Background()

	tests := []struct {
		name  string
		creds ports.Credentials
	}{
		{name: "missing email", creds: ports.Credentials{Password: "hunter2"}},
		{name: "missing password", creds: ports.Credentials{Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.Authenticate(ctx, tt.creds)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
		})
	}
}

func TestProvider_Authenticate_InvalidGrant(t *testing.T) {
	// The token endpoint answering 400 means the provider was reachable and
	// rejected the credentials.
	provider := createTestProvider(t, "")

	_, err := provider.Authenticate(context.Background(), ports.Credentials{
		Email:    "a@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidCredentials))
}

func TestProvider_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
	}{
		{name: "created", status: http.StatusOK},
		{name: "duplicate account", status: http.StatusConflict, wantCode: apperrors.ErrCodeConflict},
		{
			name:     "rejected attributes",
			status:   http.StatusBadRequest,
			body:     `{"message":"phone number format is invalid"}`,
			wantCode: apperrors.ErrCodeValidation,
		},
		{name: "provider down", status: http.StatusBadGateway, wantCode: apperrors.ErrCodeProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got signUpRequest
			signUpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer signUpServer.Close()

			provider := createTestProvider(t, signUpServer.URL)
			err := provider.SignUp(context.Background(), ports.SignUpInput{
				Email:    "new@example.com",
				Password: "hunter2",
				Name:     "New User",
				Admin:    true,
			})

			if tt.wantCode == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.wantCode))
			}
			assert.Equal(t, "new@example.com", got.Username)
			assert.Equal(t, "1", got.Attributes["custom:isAdmin"])
		})
	}
}

func TestProvider_SignUp_ValidationAndConfig(t *testing.T) {
	provider := createTestProvider(t, "")
	ctx := context.Background()

	err := provider.SignUp(ctx, ports.SignUpInput{Email: "a@example.com", Password: "x"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProviderUnavailable), "unconfigured endpoint")

	provider = createTestProvider(t, "http://example.invalid/signup")
	err = provider.SignUp(ctx, ports.SignUpInput{Password: "x"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))

	err = provider.SignUp(ctx, ports.SignUpInput{Email: "a@example.com"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
}

func Test_mapIDTokenClaims(t *testing.T) {
	identity, err := mapIDTokenClaims(idTokenClaims{
		Sub:         "sub-123",
		Name:        "Ada",
		Email:       "ada@example.com",
		PhoneNumber: "+15555550100",
		Address:     "1 Main St",
		IsAdmin:     "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-123", identity.Sub)
	assert.Equal(t, "Ada", identity.Name)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "+15555550100", identity.PhoneNumber)
	assert.Equal(t, "1 Main St", identity.Address)
	assert.Equal(t, map[string]string{"custom:isAdmin": "1"}, identity.Attributes)
}

func Test_mapIDTokenClaims_NoSubject(t *testing.T) {
	_, err := mapIDTokenClaims(idTokenClaims{Email: "ada@example.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMalformedIdentity))
}

func Test_mapIDTokenClaims_NoAdminClaim(t *testing.T) {
	identity, err := mapIDTokenClaims(idTokenClaims{Sub: "sub-123"})
	require.NoError(t, err)
	assert.Empty(t, identity.Attributes)
}

func Test_classifyTokenError(t *testing.T) {
	badRequest := &oauth2.RetrieveError{
		Response: &http.Response{StatusCode: http.StatusBadRequest},
		Body:     []byte(`{"error":"invalid_grant"}`),
	}
	assert.True(t, apperrors.IsCode(classifyTokenError(badRequest), apperrors.ErrCodeInvalidCredentials))

	unauthorized := &oauth2.RetrieveError{
		Response: &http.Response{StatusCode: http.StatusUnauthorized},
	}
	assert.True(t, apperrors.IsCode(classifyTokenError(unauthorized), apperrors.ErrCodeInvalidCredentials))

	serverError := &oauth2.RetrieveError{
		Response: &http.Response{StatusCode: http.StatusInternalServerError},
	}
	assert.True(t, apperrors.IsCode(classifyTokenError(serverError), apperrors.ErrCodeProviderUnavailable))

	assert.True(t, apperrors.IsCode(classifyTokenError(context.DeadlineExceeded), apperrors.ErrCodeProviderUnavailable))
}

func TestGetIDTokenFromToken_Success(t *testing.T) {
	tok := (&oauth2.Token{}).WithExtra(map[string]any{"id_token": "abc.def.ghi"})
	idTok, err := getIDTokenFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", idTok)
}

func TestGetIDTokenFromToken_Missing(t *testing.T) {
	tok := (&oauth2.Token{}).WithExtra(map[string]any{"not_id": "x"})
	_, err := getIDTokenFromToken(tok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id_token")
}

func TestGetIDTokenFromToken_Nil(t *testing.T) {
	_, err := getIDTokenFromToken(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil token")
}

// Test that the provider implements the CredentialProvider interface.
func TestProvider_ImplementsInterface(t *testing.T) {
	provider := createTestProvider(t, "")
	var _ ports.CredentialProvider = provider
}

// createTestProvider creates a provider backed by a fake issuer whose token
// endpoint rejects every password grant with invalid_grant.
func createTestProvider(t *testing.T, signUpURL string) *Provider {
	t.Helper()

	issuer := ""
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"issuer":                 issuer,
			"authorization_endpoint": issuer + "/auth",
			"token_endpoint":         issuer + "/token",
			"jwks_uri":               issuer + "/jwks",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})
	issuerServer := httptest.NewServer(mux)
	t.Cleanup(issuerServer.Close)
	issuer = issuerServer.URL

	provider, err := NewProvider(ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Scope:        "openid profile email",
		DiscoveryURL: issuerServer.URL,
		SignUpURL:    signUpURL,
	})
	require.NoError(t, err)
	return provider
}
