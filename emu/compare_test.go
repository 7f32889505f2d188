package emu_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kestrel-systems/vxlvm/emu"
	"github.com/kestrel-systems/vxlvm/insts"
)

var _ = Describe("Comparison and conditional branch", func() {
	var m *emu.Machine

	BeforeEach(func() {
		m = emu.NewMachine(nil)
	})

	Describe("RFL high-bit preservation", func() {
		It("leaves bits above the condition bits untouched across cmp", func() {
			m.Registers().Set(insts.RFL, 0xFF00|uint64(0b111))
			m.Registers().Set(insts.R0, 1)
			m.Registers().Set(insts.R1, 2)
			m.ExecuteCmp(insts.R0, insts.R1)
			Expect(m.Registers().Get(insts.RFL) &^ 0b111).To(Equal(uint64(0xFF00)))
		})

		It("sets exactly one condition bit per comparison", func() {
			m.Registers().Set(insts.R0, 5)
			m.Registers().Set(insts.R1, 5)
			m.ExecuteCmp(insts.R0, insts.R1)
			flags := m.Registers().Get(insts.RFL) & 0b111
			Expect(flags).To(Equal(uint64(0b001)))
		})
	})

	Describe("unsigned cmp", func() {
		It("treats the high bit as magnitude, not sign", func() {
			m.Registers().Set(insts.R0, ^uint64(0)) // huge unsigned, negative if signed
			m.Registers().Set(insts.R1, 1)
			m.ExecuteCmp(insts.R0, insts.R1)
			Expect(m.Registers().Get(insts.RFL) & 0b111).To(Equal(uint64(0b100))) // greater
		})
	})

	Describe("cmpf", func() {
		It("reports less/equal/greater for ordered floats", func() {
			m.ExecuteLdf(insts.R0, math.Float64bits(1.0))
			m.ExecuteLdf(insts.R1, math.Float64bits(2.0))
			m.ExecuteCmpf(insts.R0, insts.R1)
			Expect(m.Registers().Get(insts.RFL) & 0b111).To(Equal(uint64(0b010))) // less

			m.ExecuteLdf(insts.R0, math.Float64bits(2.0))
			m.ExecuteCmpf(insts.R0, insts.R1)
			Expect(m.Registers().Get(insts.RFL) & 0b111).To(Equal(uint64(0b001))) // equal

			m.ExecuteLdf(insts.R0, math.Float64bits(3.0))
			m.ExecuteCmpf(insts.R0, insts.R1)
			Expect(m.Registers().Get(insts.RFL) & 0b111).To(Equal(uint64(0b100))) // greater
		})

		It("clears every condition bit when an operand is NaN", func() {
			m.Registers().Set(insts.RFL, 0b100) // stale flag from a prior comparison
			m.ExecuteLdf(insts.R0, math.Float64bits(math.NaN()))
			m.ExecuteLdf(insts.R1, math.Float64bits(1.0))
			m.ExecuteCmpf(insts.R0, insts.R1)
			Expect(m.Registers().Get(insts.RFL) & 0b111).To(Equal(uint64(0)))
		})
	})

	Describe("compound conditional jumps", func() {
		It("jge takes the branch on both greater and equal", func() {
			program := []insts.Instruction{
				{Op: insts.OpLdi, Immediates: []uint64{5}, Registers: reg(insts.R0)},
				{Op: insts.OpLdi, Immediates: []uint64{5}, Registers: reg(insts.R1)},
				{Op: insts.OpCmpi, Registers: reg(insts.R0, insts.R1)},
				{Op: insts.OpJge, Addresses: []uint64{5}},
				{Op: insts.OpHalt},
				{Op: insts.OpLdi, Immediates: []uint64{1}, Registers: reg(insts.R2)},
				{Op: insts.OpHalt},
			}
			mm := emu.NewMachine(program)
			Expect(mm.Run(nil)).To(Succeed())
			Expect(mm.Registers().Get(insts.R2)).To(Equal(uint64(1)))
		})

		It("jge does not take the branch when strictly less", func() {
			program := []insts.Instruction{
				{Op: insts.OpLdi, Immediates: []uint64{4}, Registers: reg(insts.R0)},
				{Op: insts.OpLdi, Immediates: []uint64{5}, Registers: reg(insts.R1)},
				{Op: insts.OpCmpi, Registers: reg(insts.R0, insts.R1)},
				{Op: insts.OpJge, Addresses: []uint64{5}},
				{Op: insts.OpLdi, Immediates: []uint64{9}, Registers: reg(insts.R2)},
				{Op: insts.OpHalt},
				{Op: insts.OpLdi, Immediates: []uint64{1}, Registers: reg(insts.R2)},
				{Op: insts.OpHalt},
			}
			mm := emu.NewMachine(program)
			Expect(mm.Run(nil)).To(Succeed())
			Expect(mm.Registers().Get(insts.R2)).To(Equal(uint64(9)))
		})

		It("jle takes the branch on both less and equal", func() {
			program := []insts.Instruction{
				{Op: insts.OpLdi, Immediates: []uint64{5}, Registers: reg(insts.R0)},
				{Op: insts.OpLdi, Immediates: []uint64{5}, Registers: reg(insts.R1)},
				{Op: insts.OpCmpi, Registers: reg(insts.R0, insts.R1)},
				{Op: insts.OpJle, Addresses: []uint64{5}},
				{Op: insts.OpHalt},
				{Op: insts.OpLdi, Immediates: []uint64{1}, Registers: reg(insts.R2)},
				{Op: insts.OpHalt},
			}
			mm := emu.NewMachine(program)
			Expect(mm.Run(nil)).To(Succeed())
			Expect(mm.Registers().Get(insts.R2)).To(Equal(uint64(1)))
		})
	})

	Describe("jeq and jne", func() {
		It("jeq branches only on equality, jne only on inequality", func() {
			m.Registers().Set(insts.R0, 3)
			m.Registers().Set(insts.R1, 3)
			m.ExecuteCmpi(insts.R0, insts.R1)
			Expect(m.ExecuteJeq(99)).To(BeTrue())
			Expect(m.ExecuteJne(99)).To(BeFalse())

			m.Registers().Set(insts.R0, 3)
			m.Registers().Set(insts.R1, 4)
			m.ExecuteCmpi(insts.R0, insts.R1)
			Expect(m.ExecuteJeq(99)).To(BeFalse())
			Expect(m.ExecuteJne(99)).To(BeTrue())
		})
	})
})
