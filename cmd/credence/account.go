// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/credence-auth/credence/internal/account"
	"github.com/credence-auth/credence/internal/account/postgres"
	"github.com/credence-auth/credence/internal/store"
)

// NewAccountCmd creates the account subcommand group.
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountCreateCmd())
	return cmd
}

func newAccountCreateCmd() *cobra.Command {
	var (
		username  string
		password  string
		mobile    string
		firstName string
		lastName  string
		email     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new account",
		Long: `Provision a new account through the credential service. The request must
carry either --username together with --password, or --mobile. Duplicate
identities are rejected.`,
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

			svc, err := account.NewServiceWithLogger(
				postgres.NewAccountRepository(pool),
				newHasher(cfg),
				slog.Default(),
			)
			if err != nil {
				return err
			}

			req := account.CreateRequest{
				Username:  optional(username),
				Password:  optional(password),
				Mobile:    optional(mobile),
				FirstName: optional(firstName),
				LastName:  optional(lastName),
				Email:     optional(email),
			}

			view, err := svc.Create(ctx, req)
			if err != nil {
				if errors.Is(err, account.ErrDuplicateAccount) {
					cmd.PrintErrln("An account with that identity already exists")
				} else if errors.Is(err, account.ErrInvalidRequest) {
					cmd.PrintErrln("Supply --username with --password, or --mobile")
				}
				return err
			}

			cmd.Printf("Account created: %s\n", view.ID.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (requires --password)")
	cmd.Flags().StringVar(&password, "password", "", "plaintext password; hashed before storage")
	cmd.Flags().StringVar(&mobile, "mobile", "", "mobile number")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

// optional maps an empty flag value to an absent field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
