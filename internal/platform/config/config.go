// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

/*
Package config handles client-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (HTTP client, stores) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This keeps the client Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Guidora mobile core.
type Config struct {

	// Backend settings
	APIBaseURL     string        `env:"API_BASE_URL"    envDefault:"https://api.guidora.app/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// CredentialPath is the filesystem path of the persisted bearer token.
	// When empty, a per-user default under the OS config directory is used.
	CredentialPath string `env:"CREDENTIAL_PATH"`

	// CredentialSealKey enables at-rest encryption of the persisted token
	// when set (64 hex characters / 32 bytes). Empty means plain text.
	CredentialSealKey string `env:"CREDENTIAL_SEAL_KEY"`

	// RedisURL switches the credential store to a shared Redis deployment
	// (kiosk installations, end-to-end rigs). Empty means on-device file.
	RedisURL string `env:"REDIS_URL"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// ResolveCredentialPath returns the configured credential file path, falling
// back to <user config dir>/guidora/<file> when unset.
func (c *Config) ResolveCredentialPath(fileName string) (string, error) {
	if c.CredentialPath != "" {
		return c.CredentialPath, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve user config dir: %w", err)
	}

	return filepath.Join(base, "guidora", fileName), nil
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
