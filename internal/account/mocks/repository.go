// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

// Package mocks provides testify mocks for the account package interfaces.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/credence-auth/credence/internal/account"
)

// MockRepository is a mock implementation of account.Repository.
type MockRepository struct {
	mock.Mock
}

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockRepository creates a new MockRepository and registers expectation
// assertion as test cleanup.
func NewMockRepository(t mockConstructorTestingT) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Create(ctx context.Context, acct *account.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id ulid.ULID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockRepository) GetByMobile(ctx context.Context, mobile string) (*account.Account, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, acct *account.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

// Compile-time interface check.
var _ account.Repository = (*MockRepository)(nil)
