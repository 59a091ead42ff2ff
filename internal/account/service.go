// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/credence-auth/credence/internal/observability"
)

// Service provides the credential-provider operations consumed by a host
// authentication framework. It is stateless between calls.
type Service struct {
	accounts Repository
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(accounts Repository, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(accounts, hasher, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(accounts Repository, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if accounts == nil {
		return nil, oops.Code("ACCOUNT_SERVICE_INVALID").Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("ACCOUNT_SERVICE_INVALID").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("ACCOUNT_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{accounts: accounts, hasher: hasher, logger: logger}, nil
}

// Authenticate looks up the account for username and verifies password
// against its stored hash. The existence check strictly precedes password
// verification, so "no such account" and "wrong password" surface as the two
// distinct kinds ErrNotFound and ErrInvalidCredentials. On success the
// sanitized view of the matched account is returned.
//
// No lockout or backoff is applied at this layer; that is the host's concern.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*SanitizedAccount, error) {
	if username == "" {
		return nil, oops.Code("AUTH_USERNAME_EMPTY").Wrap(ErrInvalidRequest)
	}

	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			observability.RecordAuthentication("not_found")
			return nil, oops.Code("ACCOUNT_NOT_FOUND").
				With("username", username).
				Wrap(ErrNotFound)
		}
		observability.RecordAuthentication("error")
		return nil, oops.Code("AUTH_LOOKUP_FAILED").
			With("operation", "get account by username").
			Wrap(err)
	}

	// Accounts provisioned by mobile number carry no hash and cannot
	// authenticate by password.
	if acct.PasswordHash == nil || *acct.PasswordHash == "" {
		observability.RecordAuthentication("invalid_credentials")
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	valid, err := s.hasher.Verify(password, *acct.PasswordHash)
	if err != nil {
		observability.RecordAuthentication("error")
		return nil, oops.Code("AUTH_VERIFY_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !valid {
		observability.RecordAuthentication("invalid_credentials")
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	observability.RecordAuthentication("success")
	return Sanitize(acct), nil
}

// Create validates req, enforces identity uniqueness, hashes the password if
// one is supplied, and inserts the new account. The duplicate pre-check is a
// fast path only; the store's unique constraints are authoritative and an
// insert-time violation surfaces as the same domain error the pre-check would
// have produced. No partial state is persisted: if hashing fails nothing is
// inserted.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*SanitizedAccount, error) {
	if err := req.Validate(); err != nil {
		return nil, oops.Code("ACCOUNT_REQUEST_INVALID").
			Hint("supply username+password or a mobile number").
			Wrap(err)
	}

	if err := s.checkIdentityFree(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	acct := &Account{
		ID:        ulid.Make(),
		Username:  req.Username,
		Mobile:    req.Mobile,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if present(req.Password) {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, oops.Code("ACCOUNT_HASH_FAILED").
				With("operation", "hash password").
				Wrap(err)
		}
		acct.PasswordHash = &hash
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			// Lost the race between pre-check and insert; the unique index
			// is the backstop.
			return nil, oops.Code("ACCOUNT_DUPLICATE").Wrap(ErrDuplicateAccount)
		}
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			Wrap(err)
	}

	observability.RecordAccountCreated()
	s.logger.InfoContext(ctx, "account created", "account_id", acct.ID.String())

	return Sanitize(acct), nil
}

// checkIdentityFree is the best-effort duplicate pre-check. The credentials
// branch wins when both identities are supplied, mirroring Create's
// precondition.
func (s *Service) checkIdentityFree(ctx context.Context, req CreateRequest) error {
	var (
		field string
		value string
		err   error
	)
	if req.HasCredentials() {
		field, value = "username", *req.Username
		_, err = s.accounts.GetByUsername(ctx, value)
	} else {
		field, value = "mobile", *req.Mobile
		_, err = s.accounts.GetByMobile(ctx, value)
	}

	switch {
	case err == nil:
		return oops.Code("ACCOUNT_DUPLICATE").
			With(field, value).
			Wrap(ErrDuplicateAccount)
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return oops.Code("ACCOUNT_PRECHECK_FAILED").
			With("operation", "check existing "+field).
			Wrap(err)
	}
}

// FindByID retrieves an account by ID and returns its sanitized view, or
// ErrNotFound when no such account exists.
func (s *Service) FindByID(ctx context.Context, id ulid.ULID) (*SanitizedAccount, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("ACCOUNT_NOT_FOUND").
				With("id", id.String()).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id.String()).
			Wrap(err)
	}
	return Sanitize(acct), nil
}

// TokenPayload derives the claim set for token issuance from a sanitized
// view. Pure and deterministic; the view must carry a non-zero ID (a zero ID
// is a programming error upstream, not a runtime outcome).
func (s *Service) TokenPayload(view *SanitizedAccount) TokenPayload {
	return TokenPayload{
		Subject:  view.ID.String(),
		Username: view.Username,
		Mobile:   view.Mobile,
	}
}

// ResolveTokenPayload rehydrates the authenticated principal from a verified
// token payload. A subject that does not parse as an account ID cannot match
// any account and reports ErrNotFound; otherwise FindByID's semantics apply.
func (s *Service) ResolveTokenPayload(ctx context.Context, payload TokenPayload) (*SanitizedAccount, error) {
	id, err := ulid.Parse(payload.Subject)
	if err != nil {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("subject", payload.Subject).
			Wrap(ErrNotFound)
	}
	return s.FindByID(ctx, id)
}
