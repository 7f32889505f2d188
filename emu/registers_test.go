package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kestrel-systems/vxlvm/emu"
	"github.com/kestrel-systems/vxlvm/insts"
)

var _ = Describe("RegisterFile", func() {
	It("rejects nothing for the 16 valid slots", func() {
		rf := emu.NewRegisterFile(false)
		rf.Set(insts.RFL, 42)
		Expect(rf.Get(insts.RFL)).To(Equal(uint64(42)))
	})

	Describe("clamping mode", func() {
		It("saturates AddValue at the maximum uint64", func() {
			rf := emu.NewRegisterFile(false)
			rf.Set(insts.R0, ^uint64(0)-10)
			rf.AddValue(insts.R0, 11)
			Expect(rf.Get(insts.R0)).To(Equal(^uint64(0)))
		})

		It("saturates SubValue at zero", func() {
			rf := emu.NewRegisterFile(false)
			rf.Set(insts.R0, 5)
			rf.SubValue(insts.R0, 11)
			Expect(rf.Get(insts.R0)).To(Equal(uint64(0)))
		})
	})

	Describe("wrapping mode", func() {
		It("wraps AddValue past the maximum uint64", func() {
			rf := emu.NewRegisterFile(true)
			rf.Set(insts.R0, ^uint64(0)-10)
			rf.AddValue(insts.R0, 11)
			Expect(rf.Get(insts.R0)).To(Equal(uint64(0)))
		})

		It("wraps SubValue past zero", func() {
			rf := emu.NewRegisterFile(true)
			rf.Set(insts.R0, 5)
			rf.SubValue(insts.R0, 11)
			Expect(rf.Get(insts.R0)).To(Equal(^uint64(0) - 5))
		})
	})
})
