// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package account

import "errors"

var (
	// ErrNotFound is returned when a lookup by username or ID finds nothing.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidCredentials is returned when the account exists but password
	// verification failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRequest is returned when a creation request fails the
	// minimum-field precondition or violates a uniqueness constraint.
	ErrInvalidRequest = errors.New("invalid account request")

	// ErrDuplicateAccount is returned when an insert collides with an
	// existing identity. It matches ErrInvalidRequest under errors.Is so
	// callers can treat both as one rejection kind.
	ErrDuplicateAccount = duplicateError{}
)

// duplicateError is a distinct duplicate-identity kind that still satisfies
// errors.Is(err, ErrInvalidRequest).
type duplicateError struct{}

func (duplicateError) Error() string { return "duplicate account" }

func (duplicateError) Is(target error) bool { return target == ErrInvalidRequest }
