package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"data/ezpay.sqlite"`
	Env         string `env:"APP_ENV" envDefault:"development"`
}

// Load parses configuration from environment variables.
// Precedence: explicit env var > .env file (loaded by main) > default.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Development reports whether the app runs in development mode.
// Error pages include failure details only in this mode.
func (c *Config) Development() bool { return c.Env == "development" }
