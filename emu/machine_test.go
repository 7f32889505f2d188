package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kestrel-systems/vxlvm/emu"
	"github.com/kestrel-systems/vxlvm/insts"
)

func reg(r insts.Register, rest ...insts.Register) []insts.Register {
	return append([]insts.Register{r}, rest...)
}

var _ = Describe("Machine", func() {
	It("runs a straight-line program to halt", func() {
		program := []insts.Instruction{
			{Op: insts.OpLdi, Immediates: []uint64{7}, Registers: reg(insts.R0)},
			{Op: insts.OpLdi, Immediates: []uint64{35}, Registers: reg(insts.R1)},
			{Op: insts.OpAddi, Registers: reg(insts.R2, insts.R0, insts.R1)},
			{Op: insts.OpHalt},
		}
		m := emu.NewMachine(program)
		Expect(m.Run(nil)).To(Succeed())
		Expect(m.Halted()).To(BeTrue())
		Expect(m.Registers().Get(insts.R2)).To(Equal(uint64(42)))
	})

	Describe("heap allocate/free", func() {
		It("allocates then frees a block", func() {
			program := []insts.Instruction{
				{Op: insts.OpMalloci, Immediates: []uint64{16}, Registers: reg(insts.R0)},
				{Op: insts.OpFree, Registers: reg(insts.R0)},
				{Op: insts.OpHalt},
			}
			m := emu.NewMachine(program)
			Expect(m.Run(nil)).To(Succeed())
			Expect(m.Heap().TotalAllocated()).To(Equal(uint64(0)))
		})

		It("reuses the freed address for a second allocation", func() {
			program := []insts.Instruction{
				{Op: insts.OpMalloci, Immediates: []uint64{8}, Registers: reg(insts.R0)},
				{Op: insts.OpMalloci, Immediates: []uint64{8}, Registers: reg(insts.R1)},
				{Op: insts.OpFree, Registers: reg(insts.R0)},
				{Op: insts.OpMalloci, Immediates: []uint64{8}, Registers: reg(insts.R2)},
				{Op: insts.OpHalt},
			}
			m := emu.NewMachine(program)
			Expect(m.Run(nil)).To(Succeed())
			Expect(m.Registers().Get(insts.R0)).To(Equal(m.Registers().Get(insts.R2)))
		})
	})

	Describe("call and ret", func() {
		It("saves the return address and frame base across a call", func() {
			program := []insts.Instruction{
				{Op: insts.OpCall, Addresses: []uint64{3}},
				{Op: insts.OpLdi, Immediates: []uint64{0x20}, Registers: reg(insts.R0)},
				{Op: insts.OpHalt},
				{Op: insts.OpLdi, Immediates: []uint64{0x10}, Registers: reg(insts.R0)},
				{Op: insts.OpRet},
			}
			m := emu.NewMachine(program)
			Expect(m.Run(nil)).To(Succeed())
			Expect(m.Halted()).To(BeTrue())
			Expect(m.Registers().Get(insts.R0)).To(Equal(uint64(0x20)))
			Expect(m.Registers().Get(insts.RFP)).To(Equal(uint64(0)))
		})
	})

	Describe("signed compare and branch", func() {
		It("takes a jlt branch when the left operand is smaller", func() {
			negThirtyThree := uint64(int64(-33))
			negThirtyTwo := uint64(int64(-32))
			program := []insts.Instruction{
				{Op: insts.OpLdi, Immediates: []uint64{negThirtyThree}, Registers: reg(insts.R0)},
				{Op: insts.OpLdi, Immediates: []uint64{negThirtyTwo}, Registers: reg(insts.R1)},
				{Op: insts.OpCmpi, Registers: reg(insts.R0, insts.R1)},
				{Op: insts.OpJlt, Addresses: []uint64{5}},
				{Op: insts.OpHalt},
				{Op: insts.OpLdi, Immediates: []uint64{1}, Registers: reg(insts.R2)},
				{Op: insts.OpHalt},
			}
			m := emu.NewMachine(program)
			Expect(m.Run(nil)).To(Succeed())
			Expect(m.Registers().Get(insts.R2)).To(Equal(uint64(1)))
		})
	})

	Describe("float round trip", func() {
		It("truncates a float64 back to an integer with f2i", func() {
			bits := uint64(0x3FC999999999999A) // 0.2 in IEEE-754
			program := []insts.Instruction{
				{Op: insts.OpLdi, Immediates: []uint64{bits}, Registers: reg(insts.R0)},
				{Op: insts.OpF2i, Registers: reg(insts.R0)},
				{Op: insts.OpHalt},
			}
			m := emu.NewMachine(program)
			Expect(m.Run(nil)).To(Succeed())
			Expect(m.Registers().Get(insts.R0)).To(Equal(uint64(0)))
		})
	})

	Describe("syscall dispatch", func() {
		It("fails with UnknownSystemCall when no handler is installed", func() {
			program := []insts.Instruction{
				{Op: insts.OpSyscall, Immediates: []uint64{1}},
			}
			m := emu.NewMachine(program)
			err := m.Run(nil)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.UnknownSystemCall))
		})

		It("routes recognized calls to the installed handler", func() {
			program := []insts.Instruction{
				{Op: insts.OpSyscall, Immediates: []uint64{42}},
				{Op: insts.OpHalt},
			}
			m := emu.NewMachine(program)
			handler := fakeSyscallHandler{id: 42}
			Expect(m.Run(handler)).To(Succeed())
			Expect(m.Registers().Get(insts.ROU)).To(Equal(uint64(99)))
		})
	})

	Describe("running past the end of the instruction stream", func() {
		It("fails with NoInstruction", func() {
			m := emu.NewMachine(nil)
			err := m.RunNext(nil)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.NoInstruction))
		})
	})

	Describe("running a halted machine", func() {
		It("fails with SystemHalted", func() {
			program := []insts.Instruction{{Op: insts.OpHalt}}
			m := emu.NewMachine(program)
			Expect(m.Run(nil)).To(Succeed())
			err := m.RunNext(nil)
			Expect(err).To(HaveOccurred())
			Expect(err.(*emu.Error).Kind).To(Equal(emu.SystemHalted))
		})
	})
})

type fakeSyscallHandler struct {
	id uint64
}

func (f fakeSyscallHandler) Execute(call uint64, m *emu.Machine) (bool, error) {
	if call != f.id {
		return false, nil
	}
	m.Registers().Set(insts.ROU, 99)
	return true, nil
}
