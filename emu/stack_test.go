package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kestrel-systems/vxlvm/emu"
)

var _ = Describe("Stack", func() {
	It("defaults new machines to a 2,000,000 byte stack", func() {
		Expect(emu.DefaultStackSize).To(Equal(2_000_000))
	})

	It("round-trips a u64 push and pop", func() {
		s := emu.NewStack(64)
		Expect(s.InsertU64(0, 0xDEADBEEF)).To(BeTrue())
		v, ok := s.GetTopU64(8)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint64(0xDEADBEEF)))
	})

	It("fails rather than growing past capacity", func() {
		s := emu.NewStack(4)
		Expect(s.InsertU64(0, 1)).To(BeFalse())
	})

	It("fails GetTop when amount exceeds top", func() {
		s := emu.NewStack(64)
		_, ok := s.GetTop(4, 8)
		Expect(ok).To(BeFalse())
	})

	It("fails GetTop when top exceeds capacity", func() {
		s := emu.NewStack(8)
		_, ok := s.GetTop(16, 8)
		Expect(ok).To(BeFalse())
	})
})
