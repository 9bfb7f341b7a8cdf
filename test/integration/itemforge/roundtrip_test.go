// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package itemforge_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/holomush/itemforge/internal/notation"
	"github.com/holomush/itemforge/internal/recipe"
	"github.com/holomush/itemforge/internal/script"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/textfmt"
)

var _ = Describe("Item round trips", func() {
	var env *testEnv

	BeforeEach(func() {
		env = newTestEnv(0, true)
	})

	Describe("notation", func() {
		It("materializes every property onto the artifact", func() {
			d, err := notation.Build(
				`LEATHER_BOOTS{name:"Striders",color:aqua,lore:["Fast","Light"],flags:["HIDE_*"],mods:{FEATHER_FALLING:4},wear:5,tint:#3366ff}`,
				env.factory, env.catalog)
			Expect(err).NotTo(HaveOccurred())

			a := materialize(d)
			meta := a.Snapshot()
			Expect(a.PlainName()).To(Equal("Striders"))
			Expect(meta.Lore()).To(Equal([]string{"Fast", "Light"}))
			Expect(meta.Flags()).To(HaveLen(len(env.catalog.Flags())))
			Expect(meta.Modifiers()).To(HaveKeyWithValue(item.ModifierKind("FEATHER_FALLING"), 4))
			Expect(meta.Damage()).To(Equal(5))

			tint, ok := meta.Tint()
			Expect(ok).To(BeTrue())
			Expect(textfmt.HexColor(tint)).To(Equal("#3366ff"))
		})

		It("formats descriptors that rebuild to equal descriptors", func() {
			d, err := env.factory.FromKindName("DIAMOND_SWORD", 1)
			Expect(err).NotTo(HaveOccurred())
			d.SetDisplayName("Edge").AddModifier("SHARPNESS", 5).AddModifier("LOOTING", 3).
				AppendLoreLine("one").SetUnbreakable(true).AddFlags("HIDE_ENCHANTS")
			Expect(d.Err()).NotTo(HaveOccurred())

			again, err := notation.Build(notation.Format(d), env.factory, env.catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Equal(d)).To(BeTrue())
			Expect(again.ID()).NotTo(Equal(d.ID()))
		})
	})

	Describe("recipes", func() {
		It("survives marshal and rebuild", func() {
			d, err := env.factory.FromKindName("IRON_SWORD", 1)
			Expect(err).NotTo(HaveOccurred())
			d.SetDisplayName("Blade").SetDurabilityUsed(40).AppendLoreLine("Forged")

			data, err := recipe.Marshal(">= 1.0", d)
			Expect(err).NotTo(HaveOccurred())

			f, err := recipe.Parse(data)
			Expect(err).NotTo(HaveOccurred())
			ds, err := f.Build(env.factory, env.catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(ds).To(HaveLen(1))
			Expect(ds[0].Equal(d)).To(BeTrue())
		})
	})

	Describe("scripts", func() {
		It("gives descriptors that resolve from their artifacts", func() {
			path := filepath.Join(GinkgoT().TempDir(), "kit.lua")
			Expect(os.WriteFile(path, []byte(`
for i = 1, 3 do
  itemforge.give(itemforge.new("PAPER", i):add_lore("page " .. i))
end
`), 0o600)).To(Succeed())

			runner := script.NewRunner(env.factory, env.catalog, nil)
			ds, err := runner.RunFile(context.Background(), path)
			Expect(err).NotTo(HaveOccurred())
			Expect(ds).To(HaveLen(3))

			for i, d := range ds {
				a := materialize(d)
				Expect(a.Quantity()).To(Equal(i + 1))

				found, err := env.registry.Resolve(a)
				Expect(err).NotTo(HaveOccurred())
				Expect(found).To(BeIdenticalTo(d))
			}
			Expect(testutil.ToFloat64(env.metrics.Materializations.WithLabelValues("PAPER"))).To(Equal(3.0))
		})
	})
})
