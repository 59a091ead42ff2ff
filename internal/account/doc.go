// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

// Package account implements the credential core: account provisioning
// under uniqueness constraints, username/password authentication, and
// derivation of token claim payloads.
//
// # Domain Types
//
// Account is the persisted entity. It never crosses the service boundary
// directly: every operation returns a SanitizedAccount, which is produced
// only by Sanitize and is guaranteed to carry no password hash.
//
// # Collaborators
//
// Durable state lives behind the Repository interface; password hashing
// behind PasswordHasher. Both are injected into Service. The core holds no
// state between calls and relies on the store's unique constraints as the
// sole consistency mechanism for identity uniqueness.
//
// # Errors
//
// Domain outcomes are sentinel errors (ErrNotFound, ErrInvalidCredentials,
// ErrInvalidRequest, ErrDuplicateAccount) matched with errors.Is. Anything
// else propagating out of Service is an infrastructure failure.
package account
