package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration. It is parsed once in main and
// injected into every component; nothing else reads the environment.
type Config struct {
	Addr   string `env:"ADDR" envDefault:":8080"`
	DBPath string `env:"DB_PATH" envDefault:"./bucketlists.db"`

	// TokenSecret signs bearer tokens. The default exists so the server
	// can run locally without setup; override it anywhere that matters.
	TokenSecret string        `env:"TOKEN_SECRET" envDefault:"dev-only-secret"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	ServiceName      string `env:"SERVICE_NAME" envDefault:"bucketlist-api"`
	OTLPEndpoint     string `env:"OTLP_ENDPOINT" envDefault:"otel-collector:4317"`
	TelemetryEnabled bool   `env:"TELEMETRY_ENABLED" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
