// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

// Package config loads service configuration from a YAML file and command
// line flags. Flags override file values; flag defaults fill whatever the
// file left unset.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Hasher algorithm names accepted in configuration.
const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// Config holds the service configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string. Falls back to the
	// DATABASE_URL environment variable when unset.
	DatabaseURL string `koanf:"database-url"`

	// ObservabilityAddr is the listen address for metrics and health probes.
	ObservabilityAddr string `koanf:"observability-addr"`

	// LogFormat is "json" or "text".
	LogFormat string `koanf:"log-format"`

	// HasherAlgorithm selects the password hasher: argon2id or bcrypt.
	HasherAlgorithm string `koanf:"hasher-algorithm"`

	// BcryptCost applies when HasherAlgorithm is bcrypt.
	BcryptCost int `koanf:"bcrypt-cost"`
}

// Load reads configuration from the optional YAML file at path, then applies
// flags. Passing a nil flag set skips the flag layer.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		// Passing k makes posflag keep file values for flags left at their
		// defaults, while still contributing defaults for unset keys.
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.ObservabilityAddr == "" {
		cfg.ObservabilityAddr = "127.0.0.1:9100"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.HasherAlgorithm == "" {
		cfg.HasherAlgorithm = HasherArgon2id
	}
}

// Validate checks field values. It does not require DatabaseURL; commands
// that need the database check for it themselves.
func (c *Config) Validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.LogFormat).
			Errorf("log_format must be json or text")
	}
	if c.HasherAlgorithm != HasherArgon2id && c.HasherAlgorithm != HasherBcrypt {
		return oops.Code("CONFIG_INVALID").
			With("hasher_algorithm", c.HasherAlgorithm).
			Errorf("hasher_algorithm must be %s or %s", HasherArgon2id, HasherBcrypt)
	}
	if c.BcryptCost < 0 {
		return oops.Code("CONFIG_INVALID").
			With("bcrypt_cost", c.BcryptCost).
			Errorf("bcrypt_cost must be non-negative")
	}
	return nil
}
