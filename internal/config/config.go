package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is everything the registry reads from REGISTRY_* variables.
type Config struct {
	Database DatabaseConfig `envPrefix:"REGISTRY_DB_"`
	Log      LogConfig      `envPrefix:"REGISTRY_LOG_"`
}

// DatabaseConfig says where the users table lives and how long to wait on it.
type DatabaseConfig struct {
	Path        string        `env:"PATH"         envDefault:"users.db"` // SQLite database file path or DSN
	BusyTimeout time.Duration `env:"BUSY_TIMEOUT" envDefault:"5s"`       // how long SQLite waits on a locked file
	OpTimeout   time.Duration `env:"OP_TIMEOUT"   envDefault:"3s"`       // upper bound for a single store operation
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level       string `env:"LEVEL"       envDefault:"info"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

// Load parses the environment, fills unset values from envDefault tags and
// validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that env parsing alone cannot catch.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("REGISTRY_DB_PATH must not be empty")
	}
	if c.Database.BusyTimeout < 0 {
		return errors.New("REGISTRY_DB_BUSY_TIMEOUT must not be negative")
	}
	if c.Database.OpTimeout <= 0 {
		return errors.New("REGISTRY_DB_OP_TIMEOUT must be positive")
	}
	return nil
}

// String summarizes the config for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, BusyTimeout: %s, OpTimeout: %s, Log: %s}",
		c.Database.Path, c.Database.BusyTimeout, c.Database.OpTimeout, c.Log.Level)
}
