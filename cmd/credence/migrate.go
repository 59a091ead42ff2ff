// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/credence-auth/credence/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var (
		down  bool
		steps int
		force int
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply pending database migrations against the PostgreSQL database.
With --down all migrations are rolled back (destructive); --steps applies a
fixed number of migrations; --force recovers from a dirty state.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := requireDatabaseURL(cfg); err != nil {
				return err
			}

			migrator, err := store.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer migrator.Close() //nolint:errcheck // close error is not actionable here

			switch {
			case cmd.Flags().Changed("force"):
				if force < 0 {
					return oops.Code("INVALID_VERSION").Errorf("--force version must be non-negative")
				}
				if err := migrator.Force(force); err != nil {
					return err
				}
				cmd.Printf("Forced migration version to %d\n", force)
			case cmd.Flags().Changed("steps"):
				if err := migrator.Steps(steps); err != nil {
					return err
				}
				cmd.Printf("Applied %d migration step(s)\n", steps)
			case down:
				if err := migrator.Down(); err != nil {
					return err
				}
				cmd.Println("Rolled back all migrations")
			default:
				if err := migrator.Up(); err != nil {
					return err
				}
				cmd.Println("Migrations completed successfully")
			}

			version, dirty, err := migrator.Version()
			if err != nil {
				return err
			}
			cmd.Printf("Current version: %d (dirty: %v)\n", version, dirty)
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back all migrations (destructive)")
	cmd.Flags().IntVar(&steps, "steps", 0, "apply a fixed number of migration steps (negative rolls back)")
	cmd.Flags().IntVar(&force, "force", 0, "force the migration version without running migrations")

	return cmd
}
