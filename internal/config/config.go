package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters, loaded from the environment.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// SessionSecret signs session tokens. The server refuses to start
	// without it: sessions cannot be issued or verified unsigned.
	SessionSecret string `env:"SESSION_SECRET"`

	// Passcode hash records in scrypt$<salt>$<key> form. See the
	// hash-passcode CLI command for generating them.
	AdminPasscodeHash    string `env:"ADMIN_PASSCODE_HASH"`
	DictatorPasscodeHash string `env:"DICTATOR_PASSCODE_HASH"`

	// SecureCookies marks the session cookie Secure; enable in production
	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	return &cfg, nil
}
