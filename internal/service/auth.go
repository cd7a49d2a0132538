package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	"github.com/bookstand/store-ui-api/internal/domain/model"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider  ports.CredentialProvider
	Sessions  ports.SessionStore
	Roles     ports.RoleMapper
	Directory ports.UserDirectory
	Logger    *slog.Logger // Optional: structured logger
}

// AuthService orchestrates authentication: credential exchange, role
// mapping, store-API user reconciliation, and session persistence.
type AuthService struct {
	provider  ports.CredentialProvider
	sessions  ports.SessionStore
	roles     ports.RoleMapper
	directory ports.UserDirectory
	logger    *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}
	return &AuthService{
		provider:  opts.Provider,
		sessions:  opts.Sessions,
		roles:     opts.Roles,
		directory: opts.Directory,
		logger:    logger,
	}
}

// LoginInput groups parameters for a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the established session and the role-dependent
// landing path the browser should navigate to.
type LoginResult struct {
	Session     domainauth.Session
	LandingPath string
}

// Login exchanges credentials for an identity, maps the role, reconciles
// the store API's user record, and persists a session. The session is only
// saved after every prior step succeeded; a failed login leaves no session
// behind.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if input.Password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	grant, err := s.provider.Authenticate(ctx, ports.Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	role := s.roles.Map(grant.Identity.Attributes)

	if reconcileErr := s.reconcileUserRecord(ctx, grant, role); reconcileErr != nil {
		return nil, fmt.Errorf("reconcile user record: %w", reconcileErr)
	}

	session := domainauth.Session{
		ID:          generateSessionID(),
		Sub:         grant.Identity.Sub,
		Name:        grant.Identity.Name,
		Email:       grant.Identity.Email,
		PhoneNumber: grant.Identity.PhoneNumber,
		Address:     grant.Identity.Address,
		Role:        role,
		BearerToken: grant.BearerToken,
		ExpiresAt:   grant.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "login succeeded", "sub", session.Sub, "role", session.Role)
	}

	return &LoginResult{
		Session:     session,
		LandingPath: role.LandingPath(),
	}, nil
}

// reconcileUserRecord ensures the store API holds a user record for the
// identity. A missing record is created; a concurrent create racing us to a
// conflict counts as success. Any other directory failure aborts the login.
func (s *AuthService) reconcileUserRecord(ctx context.Context, grant ports.Grant, role domainauth.Role) error {
	sub := grant.Identity.Sub

	_, err := s.directory.GetUser(ctx, grant.BearerToken, sub)
	if err == nil {
		return nil
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		return fmt.Errorf("look up user %q: %w", sub, err)
	}

	record := model.UserRecord{
		Sub:         sub,
		Name:        grant.Identity.Name,
		Email:       grant.Identity.Email,
		PhoneNumber: grant.Identity.PhoneNumber,
		Address:     grant.Identity.Address,
		IsAdmin:     role == domainauth.RoleAdmin,
	}
	createErr := s.directory.CreateUser(ctx, grant.BearerToken, record)
	if createErr == nil {
		return nil
	}
	if apperrors.IsCode(createErr, apperrors.ErrCodeConflict) {
		// Another login created the record first.
		return nil
	}
	return fmt.Errorf("create user %q: %w", sub, createErr)
}

// SignUp forwards a registration to the identity provider. The store API's
// user record is not created here; it is reconciled on the first login.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) error {
	if input.Email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if input.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}

	if err := s.provider.SignUp(ctx, input); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "sign-up submitted", "email", input.Email)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		// Clean up expired session
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
