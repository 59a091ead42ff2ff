// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

// Command credence is the operator tooling for the Credence credential
// service: schema migrations, account provisioning, and an observability
// endpoint. The credential core itself is a library mounted by a host
// authentication framework; no authentication transport lives here.
package main

import (
	"log/slog"
	"os"

	"github.com/credence-auth/credence/pkg/errutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		errutil.LogError(slog.Default(), "command failed", err)
		os.Exit(1)
	}
}
