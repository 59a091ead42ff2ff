// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/credence-auth/credence/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database connectivity and migration status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := requireDatabaseURL(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := store.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			cmd.Println("Database: reachable")

			migrator, err := store.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer migrator.Close() //nolint:errcheck // close error is not actionable here

			version, dirty, err := migrator.Version()
			if err != nil {
				return err
			}
			cmd.Printf("Migration version: %d (dirty: %v)\n", version, dirty)
			return nil
		},
	}
}
