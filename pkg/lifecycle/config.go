package lifecycle

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fluxkit/fluxkit"
)

// Config holds the environment-driven middleware settings.
type Config struct {
	RequestTimeout time.Duration `env:"FLUXKIT_REQUEST_TIMEOUT" envDefault:"0s"`
	MetricsEnabled bool          `env:"FLUXKIT_METRICS_ENABLED" envDefault:"false"`
}

var dotenvOnce sync.Once

// LoadConfig reads the middleware configuration from environment variables,
// loading a .env file first when one exists.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// NewFromEnv builds the middleware from environment configuration. Explicit
// options are applied after the configured ones and take precedence.
func NewFromEnv(opts ...Option) (fluxkit.Middleware, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	configured := make([]Option, 0, len(opts)+2)
	if cfg.RequestTimeout > 0 {
		configured = append(configured, WithRequestTimeout(cfg.RequestTimeout))
	}
	if cfg.MetricsEnabled {
		configured = append(configured, WithMetrics(NewMetrics()))
	}
	configured = append(configured, opts...)

	return New(configured...), nil
}
