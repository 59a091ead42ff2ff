// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

// Package postgres implements account.Repository using PostgreSQL.
//
// The accounts table enforces the identity constraints the core relies on:
// a partial unique index on username (unique-if-present) and a compound
// unique index on (mobile, username) covering every row that carries at
// least one identity field, with nulls not distinct so mobile-only
// duplicates still collide. Unique violations are
// translated into account.ErrDuplicateAccount so the service never sees a
// raw pg error for an identity collision.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/credence-auth/credence/internal/account"
)

// poolIface is the subset of pgxpool.Pool the repository uses. pgxmock's
// PgxPoolIface satisfies it, which keeps the repository unit-testable
// without a database.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements account.Repository using PostgreSQL.
type AccountRepository struct {
	pool poolIface
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool poolIface) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create stores a new account. An identity collision (username or the
// (mobile, username) pair already taken) surfaces as ErrDuplicateAccount.
func (r *AccountRepository) Create(ctx context.Context, acct *account.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (
			id, username, mobile, password_hash,
			first_name, last_name, email, last_login,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		acct.ID.String(),
		acct.Username,
		acct.Mobile,
		acct.PasswordHash,
		acct.FirstName,
		acct.LastName,
		acct.Email,
		acct.LastLogin,
		acct.CreatedAt,
		acct.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("ACCOUNT_DUPLICATE").
				With("constraint", pgErr.ConstraintName).
				Wrap(account.ErrDuplicateAccount)
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id ulid.ULID) (*account.Account, error) {
	row := r.pool.QueryRow(ctx, selectAccount+`WHERE id = $1`, id.String())

	acct, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id.String()).
			Wrap(err)
	}
	return acct, nil
}

// GetByUsername retrieves an account by username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	row := r.pool.QueryRow(ctx, selectAccount+`WHERE username = $1`, username)

	acct, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_USERNAME_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return acct, nil
}

// GetByMobile retrieves an account by mobile number.
func (r *AccountRepository) GetByMobile(ctx context.Context, mobile string) (*account.Account, error) {
	row := r.pool.QueryRow(ctx, selectAccount+`WHERE mobile = $1`, mobile)

	acct, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("mobile", mobile).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_MOBILE_FAILED").
			With("operation", "get account by mobile").
			With("mobile", mobile).
			Wrap(err)
	}
	return acct, nil
}

// Update updates an existing account.
func (r *AccountRepository) Update(ctx context.Context, acct *account.Account) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE accounts SET
			username = $2,
			mobile = $3,
			password_hash = $4,
			first_name = $5,
			last_name = $6,
			email = $7,
			last_login = $8,
			updated_at = $9
		WHERE id = $1
	`,
		acct.ID.String(),
		acct.Username,
		acct.Mobile,
		acct.PasswordHash,
		acct.FirstName,
		acct.LastName,
		acct.Email,
		acct.LastLogin,
		time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("ACCOUNT_DUPLICATE").
				With("constraint", pgErr.ConstraintName).
				Wrap(account.ErrDuplicateAccount)
		}
		return oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "update account").
			With("id", acct.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("id", acct.ID.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

const selectAccount = `
	SELECT id, username, mobile, password_hash,
	       first_name, last_name, email, last_login,
	       created_at, updated_at
	FROM accounts
	`

// scanAccount scans a single row into an Account.
// Callers are responsible for handling pgx.ErrNoRows.
func (r *AccountRepository) scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		idStr     string
		acct      account.Account
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&idStr,
		&acct.Username,
		&acct.Mobile,
		&acct.PasswordHash,
		&acct.FirstName,
		&acct.LastName,
		&acct.Email,
		&acct.LastLogin,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("ACCOUNT_SCAN_FAILED").
			With("operation", "scan account").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("ACCOUNT_INVALID_ID").
			With("operation", "parse account id").
			With("id", idStr).
			Wrap(err)
	}

	acct.ID = id
	acct.CreatedAt = createdAt
	acct.UpdatedAt = updatedAt
	return &acct, nil
}

// Compile-time interface check.
var _ account.Repository = (*AccountRepository)(nil)
