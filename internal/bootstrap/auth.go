package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/bookstand/store-ui-api/config"
	"github.com/bookstand/store-ui-api/internal/adapters/authattr"
	"github.com/bookstand/store-ui-api/internal/adapters/devauth"
	"github.com/bookstand/store-ui-api/internal/adapters/oidc"
	redisadapter "github.com/bookstand/store-ui-api/internal/adapters/redis"
	"github.com/bookstand/store-ui-api/internal/ports"
	"github.com/bookstand/store-ui-api/internal/service"
)

// AuthOptions contains configuration for the auth service.
type AuthOptions struct {
	Auth        config.AuthConfig
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	Directory   ports.UserDirectory
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(opts AuthOptions) (*service.AuthService, error) {
	if opts.RedisClient == nil {
		return nil, errors.New("auth service requires a redis client")
	}
	if opts.Directory == nil {
		return nil, errors.New("auth service requires a user directory")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(opts.RedisClient, opts.Session.KeyPrefix)
	roleMapper := authattr.NewSentinelRoleMapper(opts.Auth.AdminAttribute, opts.Auth.AdminSentinel)

	var (
		provider ports.CredentialProvider
		err      error
	)
	switch opts.Auth.Mode {
	case config.AuthModeMock:
		provider, err = buildDevProvider(opts)
	case config.AuthModePassword:
		provider, err = buildOIDCProvider(opts.Auth.OIDC)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", opts.Auth.Mode)
	}
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:  provider,
		Sessions:  sessionStore,
		Roles:     roleMapper,
		Directory: opts.Directory,
		Logger:    opts.Logger,
	}), nil
}

func buildDevProvider(opts AuthOptions) (ports.CredentialProvider, error) {
	dev := opts.Auth.DevAuth
	prov, err := devauth.NewProvider(devauth.Config{
		Accounts: []devauth.Account{
			{
				Email:    dev.AdminEmail,
				Password: dev.AdminPassword,
				Name:     "Dev Admin",
				Admin:    true,
			},
			{
				Email:    dev.UserEmail,
				Password: dev.UserPassword,
				Name:     "Dev User",
			},
		},
		SessionDuration: opts.Session.DevSessionDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}

	if opts.Logger != nil {
		opts.Logger.Warn("mock auth enabled; do not use in production",
			"admin", dev.AdminEmail, "user", dev.UserEmail)
	}
	return prov, nil
}

func buildOIDCProvider(cfg config.OIDCConfig) (ports.CredentialProvider, error) {
	if cfg.DiscoveryURL == "" || cfg.ClientID == "" {
		return nil, errors.New("password auth mode requires OIDC_DISCOVERY_URL and OIDC_CLIENT_ID")
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scope:        cfg.Scope,
		DiscoveryURL: cfg.DiscoveryURL,
		SignUpURL:    cfg.SignUpURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create OIDC provider: %w", err)
	}
	return prov, nil
}
