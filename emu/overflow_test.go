package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kestrel-systems/vxlvm/emu"
	"github.com/kestrel-systems/vxlvm/insts"
)

var _ = Describe("Overflow behavior", func() {
	newMachine := func(behaviour emu.OverflowBehaviour) *emu.Machine {
		return emu.NewMachine(nil, emu.WithOverflowBehaviour(behaviour))
	}

	Describe("unsigned addition", func() {
		It("clamps at the maximum by default", func() {
			m := newMachine(emu.Clamping)
			m.Registers().Set(insts.R0, ^uint64(0))
			m.Registers().Set(insts.R1, 5)
			Expect(m.ExecuteAddu(insts.R2, insts.R0, insts.R1)).To(Succeed())
			Expect(m.Registers().Get(insts.R2)).To(Equal(^uint64(0)))
		})

		It("wraps under Wrapping", func() {
			m := newMachine(emu.Wrapping)
			m.Registers().Set(insts.R0, ^uint64(0))
			m.Registers().Set(insts.R1, 5)
			Expect(m.ExecuteAddu(insts.R2, insts.R0, insts.R1)).To(Succeed())
			Expect(m.Registers().Get(insts.R2)).To(Equal(uint64(4)))
		})

		It("reports IntegerOverflow under Reporting, not UnsignedIntegerOverflow", func() {
			m := newMachine(emu.Reporting)
			m.Registers().Set(insts.R0, ^uint64(0))
			m.Registers().Set(insts.R1, 5)
			err := m.ExecuteAddu(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.IntegerOverflow))
		})
	})

	Describe("modulo", func() {
		It("always reports AttemptedModuloZero regardless of mode", func() {
			m := newMachine(emu.Wrapping)
			m.Registers().Set(insts.R0, 10)
			m.Registers().Set(insts.R1, 0)
			err := m.ExecuteModi(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.AttemptedModuloZero))
		})
	})

	Describe("division by zero", func() {
		It("reports AttemptedModuloZero under Wrapping, signed and unsigned", func() {
			m := newMachine(emu.Wrapping)
			m.Registers().Set(insts.R0, 10)
			m.Registers().Set(insts.R1, 0)
			err := m.ExecuteDivi(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.AttemptedModuloZero))

			err = m.ExecuteDivu(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.AttemptedModuloZero))
		})

		It("reports IntegerOverflow under Clamping, signed and unsigned", func() {
			m := newMachine(emu.Clamping)
			m.Registers().Set(insts.R0, 10)
			m.Registers().Set(insts.R1, 0)
			err := m.ExecuteDivi(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.IntegerOverflow))

			err = m.ExecuteDivu(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.IntegerOverflow))
		})

		It("reports IntegerOverflow under Reporting, signed and unsigned", func() {
			m := newMachine(emu.Reporting)
			m.Registers().Set(insts.R0, 10)
			m.Registers().Set(insts.R1, 0)
			err := m.ExecuteDivi(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.IntegerOverflow))

			err = m.ExecuteDivu(insts.R2, insts.R0, insts.R1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.IntegerOverflow))
		})
	})
})
