// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package itemforge_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/holomush/itemforge/internal/metrics"
	"github.com/holomush/itemforge/pkg/item"
)

var _ = Describe("Registry", func() {
	Context("when tracking is off", func() {
		It("only resolves descriptors marked tracked", func() {
			env := newTestEnv(0, false)

			plain, err := env.factory.FromKindName("STONE", 1)
			Expect(err).NotTo(HaveOccurred())
			tracked, err := env.factory.FromKindName("STONE", 1)
			Expect(err).NotTo(HaveOccurred())
			tracked.MarkTracked()

			_, err = env.registry.Resolve(materialize(plain))
			Expect(err).To(MatchError(item.ErrNotFound))

			found, err := env.registry.Resolve(materialize(tracked))
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeIdenticalTo(tracked))

			Expect(testutil.ToFloat64(env.metrics.Lookups.WithLabelValues(metrics.ResultMiss))).To(Equal(1.0))
			Expect(testutil.ToFloat64(env.metrics.Lookups.WithLabelValues(metrics.ResultHit))).To(Equal(1.0))
		})
	})

	Context("with a capacity", func() {
		It("keeps at most capacity descriptors under concurrent creation", func() {
			env := newTestEnv(16, true)

			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					for range 10 {
						_, err := env.factory.FromKindName("APPLE", 1)
						Expect(err).NotTo(HaveOccurred())
					}
				}()
			}
			wg.Wait()

			Expect(env.registry.Len()).To(Equal(16))
			Expect(testutil.ToFloat64(env.metrics.Registrations)).To(Equal(80.0))
			Expect(testutil.ToFloat64(env.metrics.RegistrySize)).To(BeNumerically("<=", 16))
		})
	})
})
