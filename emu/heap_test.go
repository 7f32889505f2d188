package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kestrel-systems/vxlvm/emu"
)

var _ = Describe("Heap", func() {
	It("allocates a zero-filled block of the requested size", func() {
		h := emu.NewHeap()
		addr := h.Allocate(32)
		Expect(addr).To(Equal(uint64(0)))
		block, ok := h.Retrieve(addr)
		Expect(ok).To(BeTrue())
		Expect(block).To(HaveLen(32))
		for _, b := range block {
			Expect(b).To(Equal(byte(0)))
		}
	})

	It("issues dense, increasing addresses before anything is freed", func() {
		h := emu.NewHeap()
		a := h.Allocate(8)
		b := h.Allocate(8)
		Expect(a).To(Equal(uint64(0)))
		Expect(b).To(Equal(uint64(1)))
	})

	It("reuses the smallest freed address on the next allocation", func() {
		h := emu.NewHeap()
		h.Allocate(8)
		h.Allocate(8)
		Expect(h.Free(0)).To(BeTrue())
		next := h.Allocate(8)
		Expect(next).To(Equal(uint64(0)))
	})

	It("frees a single block and empties the heap", func() {
		h := emu.NewHeap()
		addr := h.Allocate(32)
		Expect(h.Free(addr)).To(BeTrue())
		_, ok := h.Retrieve(addr)
		Expect(ok).To(BeFalse())
		Expect(h.TotalAllocated()).To(Equal(uint64(0)))
	})

	It("fails to free an address that was never allocated", func() {
		h := emu.NewHeap()
		Expect(h.Free(99)).To(BeFalse())
	})

	It("AssignEmpty fails on an occupied address", func() {
		h := emu.NewHeap()
		addr := h.Allocate(4)
		Expect(h.AssignEmpty(addr, []byte{1, 2, 3, 4})).To(BeFalse())
	})

	Describe("single-byte Get/Set", func() {
		It("rejects offset == len", func() {
			h := emu.NewHeap()
			addr := h.Allocate(4)
			err := h.Set(addr, 4, 0xFF)
			Expect(err).To(HaveOccurred())
		})

		It("accepts offset == len-1", func() {
			h := emu.NewHeap()
			addr := h.Allocate(4)
			Expect(h.Set(addr, 3, 0xFF)).NotTo(HaveOccurred())
			v, err := h.Get(addr, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(byte(0xFF)))
		})
	})

	Describe("8-byte SetWord/GetWord boundary asymmetry", func() {
		It("rejects a write landing exactly at the end of the block", func() {
			h := emu.NewHeap()
			addr := h.Allocate(8)
			err := h.SetWord(addr, 0, 1)
			Expect(err).To(HaveOccurred())
		})

		It("allows a read landing exactly at the end of the block", func() {
			h := emu.NewHeap()
			addr := h.Allocate(8)
			_, err := h.GetWord(addr, 0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("round-trips a write with at least one byte of slack", func() {
			h := emu.NewHeap()
			addr := h.Allocate(9)
			Expect(h.SetWord(addr, 0, 0x1122334455667788)).NotTo(HaveOccurred())
			v, err := h.GetWord(addr, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint64(0x1122334455667788)))
		})
	})
})
