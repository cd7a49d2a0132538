package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	"github.com/bookstand/store-ui-api/internal/ports"
	"github.com/bookstand/store-ui-api/internal/service"
)

// stubAuthService is a test double for AuthServiceInterface.
type stubAuthService struct {
	getSessionFunc func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	loginFunc      func(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	signUpFunc     func(ctx context.Context, input ports.SignUpInput) error
	logoutFunc     func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if s.getSessionFunc != nil {
		return s.getSessionFunc(ctx, sessionID)
	}
	return &domainauth.Session{
		ID:        sessionID,
		Sub:       "test-user",
		Email:     "test@example.com",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s *stubAuthService) Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error) {
	if s.loginFunc != nil {
		return s.loginFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) SignUp(ctx context.Context, input ports.SignUpInput) error {
	if s.signUpFunc != nil {
		return s.signUpFunc(ctx, input)
	}
	return errors.New("not implemented")
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFunc != nil {
		return s.logoutFunc(ctx, sessionID)
	}
	return errors.New("not implemented")
}

func TestRequireSession_Success(t *testing.T) {
	middleware := RequireSession(&stubAuthService{})

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		assert.NotNil(t, session)
		assert.Equal(t, "test-session-id", session.ID)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "test-session-id"})
	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSession_BrowserRedirectsToLogin(t *testing.T) {
	middleware := RequireSession(&stubAuthService{})

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called")
	})

	// Browser navigation without a cookie. The requested path must not leak
	// into the redirect target.
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireSession_APIGets401(t *testing.T) {
	middleware := RequireSession(&stubAuthService{})

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireSession_StaleSessionRejected(t *testing.T) {
	svc := &stubAuthService{
		getSessionFunc: func(_ context.Context, _ string) (*domainauth.Session, error) {
			return nil, errors.New("session not found")
		},
	}
	middleware := RequireSession(svc)

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "stale"})
	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_UserForbiddenFromAdminRoute(t *testing.T) {
	middleware := RequireRole(&stubAuthService{}, domainauth.RoleAdmin)

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "user-session"})
	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	// Signed in but lacking the role: 403, never a login redirect.
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRequireRole_AdminPasses(t *testing.T) {
	svc := &stubAuthService{
		getSessionFunc: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			return &domainauth.Session{
				ID:        sessionID,
				Sub:       "admin-user",
				Role:      domainauth.RoleAdmin,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	middleware := RequireRole(svc, domainauth.RoleAdmin)

	called := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "admin-session"})
	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		accept  string
		browser bool
	}{
		{"html navigation", "/dashboard", "text/html,application/xhtml+xml", true},
		{"no accept header", "/dashboard", "", true},
		{"json client", "/dashboard", "application/json", false},
		{"api path", "/api/products", "text/html", false},
		{"auth path", "/auth/session", "text/html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.browser, isBrowserRequest(req))
		})
	}
}

func TestHasRequiredRole(t *testing.T) {
	assert.True(t, hasRequiredRole(domainauth.RoleAdmin, domainauth.RoleAdmin))
	assert.True(t, hasRequiredRole(domainauth.RoleAdmin, domainauth.RoleUser))
	assert.True(t, hasRequiredRole(domainauth.RoleUser, domainauth.RoleUser))
	assert.False(t, hasRequiredRole(domainauth.RoleUser, domainauth.RoleAdmin))
	assert.False(t, hasRequiredRole(domainauth.Role("unknown"), domainauth.RoleUser))
}
