// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/credence-auth/credence/internal/account"
	"github.com/credence-auth/credence/internal/config"
	"github.com/credence-auth/credence/internal/logging"
	"github.com/credence-auth/credence/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Credence CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credence",
		Short: "Credence - pluggable credential service",
		Long: `Credence provisions accounts under uniqueness constraints and verifies
username/password credentials. This CLI covers operations: migrations,
account provisioning, status, and the observability endpoint.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path")
	pf.String("database-url", "", "PostgreSQL connection string (also DATABASE_URL)")
	pf.String("observability-addr", "127.0.0.1:9100", "listen address for metrics and health probes")
	pf.String("log-format", "json", "log format: json or text")
	pf.String("hasher-algorithm", config.HasherArgon2id, "password hasher: argon2id or bcrypt")
	pf.Int("bcrypt-cost", account.DefaultBcryptCost, "bcrypt cost when hasher-algorithm is bcrypt")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewAccountCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// loadConfig loads configuration for a subcommand and configures the default
// logger from it. Without --config, the XDG config directory is checked for a
// credence.yaml.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configFile
	if path == "" {
		path = xdg.DefaultConfigPath()
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.SetDefault("credence", version, cfg.LogFormat)
	return cfg, nil
}

// requireDatabaseURL fails with a config error when no database URL was
// supplied through flag, file, or environment.
func requireDatabaseURL(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database-url (or DATABASE_URL) is required")
	}
	return nil
}

// newHasher builds the configured password hasher.
func newHasher(cfg *config.Config) account.PasswordHasher {
	if cfg.HasherAlgorithm == config.HasherBcrypt {
		return account.NewBcryptHasher(cfg.BcryptCost)
	}
	return account.NewArgon2idHasher()
}
