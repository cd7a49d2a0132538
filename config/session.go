package config

import "time"

// RedisConfig contains Redis connection configuration for the session store.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}

// SessionConfig contains session store configuration.
type SessionConfig struct {
	// KeyPrefix namespaces session keys in Redis, so one instance can
	// share a Redis with other deployments.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`

	// DevSessionDuration is the lifetime of sessions issued by the mock
	// provider.
	DevSessionDuration time.Duration `env:"DEV_SESSION_DURATION" envDefault:"8h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
	if s.DevSessionDuration <= 0 {
		s.DevSessionDuration = 8 * time.Hour
	}
}
