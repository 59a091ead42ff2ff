// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

//go:build integration

package account_test

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/credence-auth/credence/internal/account"
)

var _ = Describe("AccountRepository", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		cleanupAccounts(ctx, env.pool)
	})

	Describe("Create", func() {
		It("persists all account fields", func() {
			acct := createTestAccount("rowan", "+15550001111", "$argon2id$stub")
			acct.FirstName = strptr("Rowan")
			acct.LastName = strptr("Wells")
			acct.Email = strptr("rowan@example.com")

			err := env.Accounts.Create(ctx, acct)
			Expect(err).NotTo(HaveOccurred())

			got, err := env.Accounts.GetByID(ctx, acct.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(HaveValue(Equal("rowan")))
			Expect(got.Mobile).To(HaveValue(Equal("+15550001111")))
			Expect(got.PasswordHash).To(HaveValue(Equal("$argon2id$stub")))
			Expect(got.FirstName).To(HaveValue(Equal("Rowan")))
			Expect(got.LastName).To(HaveValue(Equal("Wells")))
			Expect(got.Email).To(HaveValue(Equal("rowan@example.com")))
			Expect(got.CreatedAt).To(BeTemporally("~", acct.CreatedAt, time.Millisecond))
		})

		It("handles nil optional fields", func() {
			acct := createTestAccount("", "+15550002222", "")

			err := env.Accounts.Create(ctx, acct)
			Expect(err).NotTo(HaveOccurred())

			got, err := env.Accounts.GetByID(ctx, acct.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(BeNil())
			Expect(got.PasswordHash).To(BeNil())
			Expect(got.LastLogin).To(BeNil())
		})

		It("rejects a duplicate username", func() {
			Expect(env.Accounts.Create(ctx, createTestAccount("dup", "", "h"))).To(Succeed())

			err := env.Accounts.Create(ctx, createTestAccount("dup", "", "h"))
			Expect(err).To(MatchError(account.ErrDuplicateAccount))
		})

		It("rejects a duplicate (mobile, username) pair", func() {
			Expect(env.Accounts.Create(ctx, createTestAccount("pair", "+15550003333", "h"))).To(Succeed())

			err := env.Accounts.Create(ctx, createTestAccount("pair", "+15550003333", "h"))
			Expect(err).To(MatchError(account.ErrDuplicateAccount))
		})

		It("rejects a second mobile-only account with the same mobile", func() {
			Expect(env.Accounts.Create(ctx, createTestAccount("", "+15550004444", ""))).To(Succeed())

			err := env.Accounts.Create(ctx, createTestAccount("", "+15550004444", ""))
			Expect(err).To(MatchError(account.ErrDuplicateAccount))
		})

		It("allows mobile-only accounts with distinct mobiles", func() {
			Expect(env.Accounts.Create(ctx, createTestAccount("", "+15550008888", ""))).To(Succeed())
			Expect(env.Accounts.Create(ctx, createTestAccount("", "+15550005555", ""))).To(Succeed())
		})

		It("allows the same mobile when only one side has a username", func() {
			// Index keys (mobile, username) and (mobile, NULL) differ, so a
			// credentials account and a mobile-only account may share a mobile.
			Expect(env.Accounts.Create(ctx, createTestAccount("solo", "+15550006666", "h"))).To(Succeed())
			Expect(env.Accounts.Create(ctx, createTestAccount("", "+15550006666", ""))).To(Succeed())
		})
	})

	Describe("GetByID", func() {
		It("returns ErrNotFound for a missing ID", func() {
			_, err := env.Accounts.GetByID(ctx, ulid.Make())
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})

	Describe("GetByUsername", func() {
		It("retrieves the matching account", func() {
			acct := createTestAccount("finder", "", "h")
			Expect(env.Accounts.Create(ctx, acct)).To(Succeed())

			got, err := env.Accounts.GetByUsername(ctx, "finder")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(acct.ID))
		})

		It("returns ErrNotFound for an unknown username", func() {
			_, err := env.Accounts.GetByUsername(ctx, "nobody")
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})

	Describe("GetByMobile", func() {
		It("retrieves the matching account", func() {
			acct := createTestAccount("", "+15550007777", "")
			Expect(env.Accounts.Create(ctx, acct)).To(Succeed())

			got, err := env.Accounts.GetByMobile(ctx, "+15550007777")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(acct.ID))
		})

		It("returns ErrNotFound for an unknown mobile", func() {
			_, err := env.Accounts.GetByMobile(ctx, "+10000000000")
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})

	Describe("Update", func() {
		It("persists changed fields and bumps updated_at", func() {
			acct := createTestAccount("mutable", "", "h")
			Expect(env.Accounts.Create(ctx, acct)).To(Succeed())

			lastLogin := time.Now().UTC().Truncate(time.Microsecond)
			acct.LastLogin = &lastLogin
			acct.Email = strptr("mutable@example.com")
			Expect(env.Accounts.Update(ctx, acct)).To(Succeed())

			got, err := env.Accounts.GetByID(ctx, acct.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.LastLogin).To(HaveValue(BeTemporally("~", lastLogin, time.Millisecond)))
			Expect(got.Email).To(HaveValue(Equal("mutable@example.com")))
			Expect(got.UpdatedAt).To(BeTemporally(">", acct.UpdatedAt))
		})

		It("returns ErrNotFound for a missing account", func() {
			acct := createTestAccount("ghost", "", "h")
			err := env.Accounts.Update(ctx, acct)
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})
})
