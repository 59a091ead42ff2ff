// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package account

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Account is the persisted user entity. Optional fields are pointers; a nil
// pointer means the field is absent and exempt from uniqueness constraints.
type Account struct {
	ID           ulid.ULID
	Username     *string
	Mobile       *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Email        *string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SanitizedAccount is the projection of Account that crosses the service
// boundary. It has no password-hash field at all, so a leak is structurally
// impossible. Construct it only through Sanitize.
type SanitizedAccount struct {
	ID        ulid.ULID
	Username  *string
	Mobile    *string
	FirstName *string
	LastName  *string
	Email     *string
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sanitize projects an Account into its sanitized view. This is the single
// point where account data is prepared to leave the core.
func Sanitize(a *Account) *SanitizedAccount {
	if a == nil {
		return nil
	}
	return &SanitizedAccount{
		ID:        a.ID,
		Username:  a.Username,
		Mobile:    a.Mobile,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// TokenPayload is the minimal claim set embedded in an issued token. It is
// derived on demand and never persisted. Signing is the host framework's job.
type TokenPayload struct {
	Subject  string  `json:"sub"`
	Username *string `json:"username,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
}

// CreateRequest carries the fields for provisioning a new account.
type CreateRequest struct {
	Username  *string
	Password  *string
	Mobile    *string
	FirstName *string
	LastName  *string
	Email     *string
}

// HasCredentials reports whether the request carries a non-empty username
// together with a non-empty password.
func (r CreateRequest) HasCredentials() bool {
	return present(r.Username) && present(r.Password)
}

// HasMobile reports whether the request carries a non-empty mobile number.
func (r CreateRequest) HasMobile() bool {
	return present(r.Mobile)
}

// Validate enforces the minimum-field precondition: either username+password
// or a mobile number must be supplied.
func (r CreateRequest) Validate() error {
	if r.HasCredentials() || r.HasMobile() {
		return nil
	}
	return ErrInvalidRequest
}

func present(s *string) bool { return s != nil && *s != "" }

// Repository manages account persistence. The store must enforce two
// constraints: unique-if-present on username, and a compound unique on
// (mobile, username) for every row carrying at least one of the two, with
// null treated as a matchable value so mobile-only duplicates collide.
// Implementations return ErrNotFound for absent rows
// and ErrDuplicateAccount for unique-constraint violations, both wrapped so
// errors.Is still matches.
type Repository interface {
	// Create stores a new account.
	Create(ctx context.Context, acct *Account) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByUsername retrieves an account by username.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByMobile retrieves an account by mobile number.
	GetByMobile(ctx context.Context, mobile string) (*Account, error)

	// Update updates an existing account. The core never calls this itself;
	// it exists for host frameworks that stamp LastLogin after issuing a
	// session.
	Update(ctx context.Context, acct *Account) error
}
