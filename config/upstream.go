package config

import "time"

// UpstreamConfig contains store API configuration. Every data read and
// write this service performs goes through that API with the session's
// bearer token.
type UpstreamConfig struct {
	// BaseURL is the root of the store API, e.g. "https://api.store.example.com".
	BaseURL string `env:"BASE_URL,required,notEmpty"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}
