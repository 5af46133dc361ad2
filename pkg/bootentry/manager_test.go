/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bootentry_test

import (
	"encoding/binary"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/elemental-efi/efibootkit/internal/efimock"
	"github.com/elemental-efi/efibootkit/pkg/bootentry"
)

func TestBootEntry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "bootentry test suite")
}

func newEntryWithPath(text string) *bootentry.Entry {
	e := bootentry.New(bootentry.Boot)
	Expect(e.SetPathsText([]string{text}, false)).NotTo(HaveOccurred())
	return e
}

var _ = Describe("BootEntryManager", Label("bootentry"), func() {
	var store *efimock.Store

	BeforeEach(func() {
		store = efimock.New()
	})

	It("assigns the first free AUTO index, skipping pre-populated slots", func() {
		store.Seed("Boot0000", []byte{0}, 0)
		store.Seed("Boot0001", []byte{0}, 0)
		store.Seed("Boot0003", []byte{0}, 0)

		mgr := bootentry.NewManager(store, nil)

		e1 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(mgr.Save(e1)).NotTo(HaveOccurred())
		Expect(e1.Index()).To(Equal(0x0002))

		e2 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(mgr.Save(e2)).NotTo(HaveOccurred())
		Expect(e2.Index()).To(Equal(0x0004))
	})

	It("round-trips save_all/load_all ordering exactly as presented", func() {
		mgr := bootentry.NewManager(store, nil)

		e0 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(e0.SetIndex(0)).NotTo(HaveOccurred())
		e1 := newEntryWithPath("PciRoot(0x0)/Pci(0x3,0x0)/MAC(525400123456,0x1)")
		Expect(e1.SetIndex(1)).NotTo(HaveOccurred())
		e2 := newEntryWithPath("Fv(7CB8BDC9-F8EB-4F34-AAEA-3EE4AF6516A1)/FvFile(7C04A583-9E3E-4F1C-AD65-E05268D0B4D1)")
		Expect(e2.SetIndex(2)).NotTo(HaveOccurred())

		Expect(mgr.SaveAll(bootentry.Boot, []*bootentry.Entry{e2, e0, e1})).NotTo(HaveOccurred())

		order, _, err := store.Read("BootOrder")
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal([]byte{2, 0, 0, 0, 1, 0}))

		loaded, err := mgr.LoadAll(bootentry.Boot)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(HaveLen(3))
		Expect(loaded[0].Index()).To(Equal(2))
		Expect(loaded[1].Index()).To(Equal(0))
		Expect(loaded[2].Index()).To(Equal(1))
	})

	It("treats a missing ordering variable as an empty list, not an error", func() {
		mgr := bootentry.NewManager(store, nil)
		entries, err := mgr.LoadAll(bootentry.Boot)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("fails save_all when an entry's type does not match the requested type", func() {
		mgr := bootentry.NewManager(store, nil)
		e := bootentry.New(bootentry.Driver)
		err := mgr.SaveAll(bootentry.Boot, []*bootentry.Entry{e})
		Expect(err).To(HaveOccurred())
	})

	It("deletes an entry and rewrites the ordering variable without it", func() {
		mgr := bootentry.NewManager(store, nil)
		e0 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(e0.SetIndex(0)).NotTo(HaveOccurred())
		e1 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(e1.SetIndex(1)).NotTo(HaveOccurred())
		Expect(mgr.SaveAll(bootentry.Boot, []*bootentry.Entry{e0, e1})).NotTo(HaveOccurred())

		remaining, err := mgr.Delete(bootentry.Boot, []*bootentry.Entry{e0, e1}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(remaining).To(HaveLen(1))
		Expect(store.Exists("Boot0000")).To(BeFalse())

		order, _, err := store.Read("BootOrder")
		Expect(err).NotTo(HaveOccurred())
		Expect(binary.LittleEndian.Uint16(order)).To(Equal(uint16(1)))
	})

	It("deletes every backing variable via DeleteAll, aggregating failures", func() {
		mgr := bootentry.NewManager(store, nil)
		e0 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(e0.SetIndex(0)).NotTo(HaveOccurred())
		e1 := newEntryWithPath("PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)")
		Expect(e1.SetIndex(1)).NotTo(HaveOccurred())
		Expect(mgr.SaveAll(bootentry.Boot, []*bootentry.Entry{e0, e1})).NotTo(HaveOccurred())

		Expect(mgr.DeleteAll([]*bootentry.Entry{e0, e1})).NotTo(HaveOccurred())
		Expect(store.Exists("Boot0000")).To(BeFalse())
		Expect(store.Exists("Boot0001")).To(BeFalse())

		// A second DeleteAll over the same entries has nothing left to
		// remove; each Del call fails NotFound, and DeleteAll reports
		// the aggregate instead of stopping at the first one.
		err := mgr.DeleteAll([]*bootentry.Entry{e0, e1})
		Expect(err).To(HaveOccurred())
	})
})
