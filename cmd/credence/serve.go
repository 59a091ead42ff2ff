// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/credence-auth/credence/internal/observability"
	"github.com/credence-auth/credence/internal/store"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand. It exposes only the
// observability endpoints; the credential core is a library consumed by a
// host framework, which owns all authentication transport.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve metrics and health probes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := requireDatabaseURL(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := store.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			ready := func() bool {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return pool.Ping(pingCtx) == nil
			}

			srv := observability.NewServer(cfg.ObservabilityAddr, ready)
			errCh, err := srv.Start()
			if err != nil {
				return err
			}

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				slog.Info("shutting down")
			}

			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Stop(stopCtx)
		},
	}
}
