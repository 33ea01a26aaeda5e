package database

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds PostgreSQL connection settings. It is loaded directly
// from the environment rather than from the YAML config file, since it
// routinely carries credentials.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	MigrationsPath  string
}

// LoadConfigFromEnv builds a Config from DATABASE_URL and friends.
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		URL:            os.Getenv("DATABASE_URL"),
		MaxOpenConns:   25,
		MaxIdleConns:   5,
		MigrationsPath: "migrations",
	}
	if cfg.URL == "" {
		return cfg, fmt.Errorf("database: DATABASE_URL is not set")
	}
	if v := os.Getenv("DATABASE_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("database: invalid DATABASE_MAX_OPEN_CONNS: %w", err)
		}
		cfg.MaxOpenConns = n
	}
	if v := os.Getenv("DATABASE_MAX_IDLE_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("database: invalid DATABASE_MAX_IDLE_CONNS: %w", err)
		}
		cfg.MaxIdleConns = n
	}
	return cfg, nil
}

// Validate checks that the config is usable before dialing.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database: URL is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("database: MaxOpenConns must be positive")
	}
	return nil
}
