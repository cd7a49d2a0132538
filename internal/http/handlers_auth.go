package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
	"github.com/bookstand/store-ui-api/internal/service"
)

// AuthServiceInterface defines the authentication operations handlers and
// the route guard depend on. Implemented by service.AuthService.
type AuthServiceInterface interface {
	Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	SignUp(ctx context.Context, input ports.SignUpInput) error
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers serves the /auth/ API surface: credential exchange, signup,
// session introspection and logout.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// sessionUser is the user summary returned by login and session responses.
type sessionUser struct {
	Sub         string `json:"sub"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

func sessionUserFrom(session *domainauth.Session) sessionUser {
	return sessionUser{
		Sub:         session.Sub,
		Name:        session.Name,
		Email:       session.Email,
		PhoneNumber: session.PhoneNumber,
		Address:     session.Address,
		IsAdmin:     session.IsAdmin(),
	}
}

// Login exchanges credentials for a server-side session. The response
// carries the role-dependent landing path; the session ID travels only in
// the cookie, never in the body.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeInternal {
			h.Logger.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		}
		WriteAppError(w, err)
		return
	}

	setSessionCookie(w, r, h.CookieDomain, result.Session.ID, result.Session.ExpiresAt)

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserFrom(&result.Session),
		"redirect_to":   result.LandingPath,
		"expires_at":    result.Session.ExpiresAt,
	})
}

// SignUp registers a new shopper account with the identity provider. No
// session is created; the client signs in afterwards.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	input := ports.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if err := h.Svc.SignUp(r.Context(), input); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"registered":  true,
		"redirect_to": loginPath,
	})
}

// Session reports whether the caller holds a live session. It never errors
// on a missing or stale cookie; absence is a normal answer here.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil || session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserFrom(session),
		"expires_at":    session.ExpiresAt,
	})
}

// Logout destroys the server-side session and expires the cookie. Both
// happen even when the session is already gone, so logout is idempotent.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.Svc.Logout(r.Context(), cookie.Value); err != nil {
			h.Logger.WarnContext(r.Context(), "session delete failed during logout", slog.Any("error", err))
		}
	}

	clearSessionCookie(w, r, h.CookieDomain)

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": false,
		"redirect_to":   loginPath,
	})
}

// setSessionCookie issues the session cookie. HttpOnly keeps it away from
// scripts; Secure is set whenever the request arrived over TLS, directly or
// behind a terminating proxy.
func setSessionCookie(w http.ResponseWriter, r *http.Request, domain, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
