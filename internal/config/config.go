package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/common"
)

// Config holds runtime settings for the classkeeper CLI.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = common.DefaultDatabase
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BusyTimeout = 5 * time.Second
	c.MaxOpenConns = 1
}

// Validate rejects settings the storage layer cannot use.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty: %w", common.ErrorValidation)
	}
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open conns must be positive, got %d: %w", c.MaxOpenConns, common.ErrorValidation)
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout is negative: %w", common.ErrorValidation)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q: %w", c.LogFormat, common.ErrorValidation)
	}
	return nil
}

// LoadConfig builds a Config from defaults, dotenv, environment, JSON and
// flags, in that order. args are the command-line arguments without the
// program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
