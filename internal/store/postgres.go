// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

// Package store provides PostgreSQL connection handling and schema
// migrations for the account store.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Ping retry parameters. Cold starts behind an orchestrator routinely race
// the database container.
const (
	pingRetryBase = 500 * time.Millisecond
	pingRetryMax  = 5
)

// Connect opens a pgx connection pool and verifies connectivity. The initial
// ping is retried with exponential backoff so callers can start before the
// database is accepting connections.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").
			With("operation", "parse database url").
			Wrap(err)
	}

	backoff := retry.WithMaxRetries(pingRetryMax, retry.NewExponential(pingRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			Wrap(err)
	}

	return pool, nil
}
