package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
	"github.com/bookstand/store-ui-api/internal/service"
	"github.com/bookstand/store-ui-api/internal/testutil"
)

func newAuthHandlers(svc AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{Svc: svc, Logger: testutil.NewTestLogger()}
}

func loginResultFor(role domainauth.Role) *service.LoginResult {
	session := domainauth.Session{
		ID:          "sess-1",
		Sub:         "sub-1",
		Email:       "user@example.com",
		Role:        role,
		BearerToken: "bearer-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	return &service.LoginResult{Session: session, LandingPath: role.LandingPath()}
}

func TestAuthHandlersLogin_SetsCookieAttributes(t *testing.T) {
	svc := &stubAuthService{
		loginFunc: func(_ context.Context, _ service.LoginInput) (*service.LoginResult, error) {
			return loginResultFor(domainauth.RoleUser), nil
		},
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"user@example.com","password":"pw"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, sessionCookieName, c.Name)
	assert.Equal(t, "sess-1", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	// Plain HTTP in tests; Secure only appears behind TLS.
	assert.False(t, c.Secure)

	// The session ID must never appear in the body.
	assert.NotContains(t, w.Body.String(), "sess-1")
}

func TestAuthHandlersLogin_SecureCookieBehindProxy(t *testing.T) {
	svc := &stubAuthService{
		loginFunc: func(_ context.Context, _ service.LoginInput) (*service.LoginResult, error) {
			return loginResultFor(domainauth.RoleAdmin), nil
		},
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"pw"}`))
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Contains(t, w.Body.String(), `"redirect_to":"/dashboard"`)
}

func TestAuthHandlersLogin_MalformedBody(t *testing.T) {
	h := newAuthHandlers(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlersSignUp(t *testing.T) {
	var got ports.SignUpInput
	svc := &stubAuthService{
		signUpFunc: func(_ context.Context, input ports.SignUpInput) error {
			got = input
			return nil
		},
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"new@example.com","password":"pw12345!","name":"New User","address":"1 Main St"}`))
	w := httptest.NewRecorder()
	h.SignUp(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "1 Main St", got.Address)
	assert.False(t, got.Admin, "self-service signup must never grant admin")
	assert.Contains(t, w.Body.String(), `"redirect_to":"/login"`)
}

func TestAuthHandlersSignUp_DuplicateEmail(t *testing.T) {
	svc := &stubAuthService{
		signUpFunc: func(_ context.Context, _ ports.SignUpInput) error {
			return apperrors.Conflict("an account with this email already exists")
		},
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"dup@example.com","password":"pw"}`))
	w := httptest.NewRecorder()
	h.SignUp(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "conflict")
}

func TestAuthHandlersLogout_IsIdempotent(t *testing.T) {
	h := newAuthHandlers(&stubAuthService{
		logoutFunc: func(_ context.Context, _ string) error { return nil },
	})

	// No cookie at all still succeeds and clears client state.
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
