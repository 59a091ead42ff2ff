// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/credence-auth/credence/internal/account"
)

// MockPasswordHasher is a mock implementation of account.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new MockPasswordHasher and registers
// expectation assertion as test cleanup.
func NewMockPasswordHasher(t mockConstructorTestingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

func (m *MockPasswordHasher) NeedsUpgrade(hash string) bool {
	args := m.Called(hash)
	return args.Bool(0)
}

// Compile-time interface check.
var _ account.PasswordHasher = (*MockPasswordHasher)(nil)
