// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credence Contributors

//go:build integration

package account_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/credence-auth/credence/internal/account"
)

var _ = Describe("Service", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		cleanupAccounts(ctx, env.pool)
	})

	Describe("Create and Authenticate", func() {
		It("round-trips credentials through the real hasher and store", func() {
			created, err := env.Service.Create(ctx, account.CreateRequest{
				Username: strptr("morgan"),
				Password: strptr("sw0rdfish!"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Username).To(HaveValue(Equal("morgan")))

			view, err := env.Service.Authenticate(ctx, "morgan", "sw0rdfish!")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.ID).To(Equal(created.ID))
		})

		It("never exposes the stored hash to callers", func() {
			_, err := env.Service.Create(ctx, account.CreateRequest{
				Username: strptr("privet"),
				Password: strptr("hunter2hunter2"),
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := env.Accounts.GetByUsername(ctx, "privet")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).NotTo(BeNil())
			Expect(*stored.PasswordHash).To(HavePrefix("$argon2id$"))
			Expect(*stored.PasswordHash).NotTo(Equal("hunter2hunter2"))
		})

		It("rejects a wrong password without leaking existence", func() {
			_, err := env.Service.Create(ctx, account.CreateRequest{
				Username: strptr("casey"),
				Password: strptr("correct-password"),
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Service.Authenticate(ctx, "casey", "wrong-password")
			Expect(err).To(MatchError(account.ErrInvalidCredentials))

			_, err = env.Service.Authenticate(ctx, "nobody", "whatever")
			Expect(err).To(MatchError(account.ErrNotFound))
		})

		It("creates mobile-only accounts without credentials", func() {
			created, err := env.Service.Create(ctx, account.CreateRequest{
				Mobile: strptr("+15558889999"),
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := env.Accounts.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Username).To(BeNil())
			Expect(stored.PasswordHash).To(BeNil())
		})

		It("rejects a second account with a taken username", func() {
			_, err := env.Service.Create(ctx, account.CreateRequest{
				Username: strptr("taken"),
				Password: strptr("password-one"),
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Service.Create(ctx, account.CreateRequest{
				Username: strptr("taken"),
				Password: strptr("password-two"),
			})
			Expect(err).To(MatchError(account.ErrDuplicateAccount))
			Expect(err).To(MatchError(account.ErrInvalidRequest))
		})
	})

	Describe("concurrent creation", func() {
		It("admits exactly one of two racing identical requests", func() {
			req := account.CreateRequest{
				Username: strptr("racer"),
				Password: strptr("photo-finish"),
			}

			var wg sync.WaitGroup
			errs := make([]error, 2)
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					_, errs[i] = env.Service.Create(ctx, req)
				}(i)
			}
			wg.Wait()

			var ok, dup int
			for _, err := range errs {
				switch {
				case err == nil:
					ok++
				default:
					Expect(err).To(MatchError(account.ErrDuplicateAccount))
					dup++
				}
			}
			Expect(ok).To(Equal(1))
			Expect(dup).To(Equal(1))

			got, err := env.Accounts.GetByUsername(ctx, "racer")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(HaveValue(Equal("racer")))
		})

		It("admits exactly one of two racing identical mobile-only requests", func() {
			// Mobile-only inserts carry no username, so only the store's
			// compound index stands between the racers and a double insert.
			req := account.CreateRequest{
				Mobile: strptr("+15557770000"),
			}

			var wg sync.WaitGroup
			errs := make([]error, 2)
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					_, errs[i] = env.Service.Create(ctx, req)
				}(i)
			}
			wg.Wait()

			var ok, dup int
			for _, err := range errs {
				switch {
				case err == nil:
					ok++
				default:
					Expect(err).To(MatchError(account.ErrDuplicateAccount))
					dup++
				}
			}
			Expect(ok).To(Equal(1))
			Expect(dup).To(Equal(1))

			got, err := env.Accounts.GetByMobile(ctx, "+15557770000")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(BeNil())
		})
	})

	Describe("TokenPayload round trip", func() {
		It("resolves a derived payload back to the same account", func() {
			created, err := env.Service.Create(ctx, account.CreateRequest{
				Username: strptr("tokened"),
				Password: strptr("claims-and-effect"),
			})
			Expect(err).NotTo(HaveOccurred())

			payload := env.Service.TokenPayload(created)
			Expect(payload.Subject).To(Equal(created.ID.String()))

			resolved, err := env.Service.ResolveTokenPayload(ctx, payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.ID).To(Equal(created.ID))
			Expect(resolved.Username).To(HaveValue(Equal("tokened")))
		})
	})
})
