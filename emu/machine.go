package emu

import (
	"github.com/kestrel-systems/vxlvm/insts"
)

// Machine is the register-based bytecode VM: register bank, stack, heap,
// a fixed instruction stream, and the fetch/execute loop over it.
type Machine struct {
	regs         *RegisterFile
	stack        *Stack
	heap         *Heap
	instructions []insts.Instruction
	ip           uint64
	halted       bool
	behaviour    OverflowBehaviour
}

// MachineOption configures a Machine at construction time, following the
// same functional-options shape the rest of this codebase uses for
// emulator construction.
type MachineOption func(*Machine)

// WithOverflowBehaviour selects the arithmetic overflow mode. Default is
// Clamping.
func WithOverflowBehaviour(b OverflowBehaviour) MachineOption {
	return func(m *Machine) { m.behaviour = b }
}

// WithStackSize overrides the default 2,000,000-byte stack capacity.
func WithStackSize(size int) MachineOption {
	return func(m *Machine) { m.stack = NewStack(size) }
}

// WithRegisterWrapping selects wrap-on-overflow (true) instead of the
// default clamp-at-bounds (false) behavior for RFP movement during
// push/pop.
func WithRegisterWrapping(wrapping bool) MachineOption {
	return func(m *Machine) { m.regs = NewRegisterFile(wrapping) }
}

// NewMachine returns a Machine ready to execute instructions, with a
// fresh register bank, a default-sized stack, an empty heap, clamping
// overflow behavior, and ip/halted zeroed.
func NewMachine(instructions []insts.Instruction, opts ...MachineOption) *Machine {
	m := &Machine{
		regs:         NewRegisterFile(false),
		stack:        NewStack(DefaultStackSize),
		heap:         NewHeap(),
		instructions: instructions,
		behaviour:    Clamping,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registers returns the machine's register bank.
func (m *Machine) Registers() *RegisterFile { return m.regs }

// Stack returns the machine's stack.
func (m *Machine) Stack() *Stack { return m.stack }

// Heap returns the machine's heap.
func (m *Machine) Heap() *Heap { return m.heap }

// IP returns the current instruction pointer.
func (m *Machine) IP() uint64 { return m.ip }

// Halted reports whether the machine has executed a halt instruction.
// Halting is sticky: once true, RunNext always fails with SystemHalted.
func (m *Machine) Halted() bool { return m.halted }

// Halt stops the machine as if it had executed a halt instruction. A
// syscall handler implementing "exit" calls this to terminate the run
// without relying on the host process exiting outright.
func (m *Machine) Halt() { m.halted = true }

// Run executes instructions until the machine halts, runs past the end
// of the instruction stream, or a cycle fails.
func (m *Machine) Run(handler SyscallHandler) error {
	for !m.halted && m.ip < uint64(len(m.instructions)) {
		if err := m.RunNext(handler); err != nil {
			return err
		}
	}
	return nil
}

// RunNext executes a single instruction. A halted machine fails with
// SystemHalted; an instruction pointer at or past the end of the stream
// fails with NoInstruction.
func (m *Machine) RunNext(handler SyscallHandler) error {
	if m.halted {
		return errSystemHalted()
	}
	if m.ip >= uint64(len(m.instructions)) {
		return errNoInstruction()
	}

	inst := m.instructions[m.ip]
	ipSet, err := m.execute(inst, handler)
	if err != nil {
		return err
	}
	if !ipSet {
		m.ip++
	}
	return nil
}

// execute dispatches a single decoded instruction. It returns true when
// the instruction already set ip itself (branches, call, ret), so
// RunNext knows not to post-increment.
func (m *Machine) execute(inst insts.Instruction, handler SyscallHandler) (bool, error) {
	switch inst.Op {
	case insts.OpNop:
		return false, nil
	case insts.OpHalt:
		m.halted = true
		return false, nil
	case insts.OpSyscall:
		return false, m.ExecuteSyscall(inst.Immediate(0), handler)

	case insts.OpLdb:
		m.ExecuteLdb(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpLdi:
		m.ExecuteLdi(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpLdf:
		m.ExecuteLdf(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpMov:
		m.ExecuteMov(inst.Reg(0), inst.Reg(1))
		return false, nil

	case insts.OpPush:
		return false, m.ExecutePush(inst.Reg(0))
	case insts.OpPop:
		return false, m.ExecutePop(inst.Reg(0))
	case insts.OpSget:
		return false, m.ExecuteSget(inst.Reg(0), inst.Reg(1))

	case insts.OpMalloc:
		return false, m.ExecuteMalloc(inst.Reg(0), inst.Reg(1))
	case insts.OpMalloci:
		return false, m.ExecuteMalloci(inst.Reg(0), inst.Immediate(0))
	case insts.OpFree:
		return false, m.ExecuteFree(inst.Reg(0))
	case insts.OpFreea:
		return false, m.ExecuteFreea(inst.Address(0))
	case insts.OpSetb:
		return false, m.ExecuteSetb(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpSeti:
		return false, m.ExecuteSeti(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpIsetb:
		return false, m.ExecuteIsetb(inst.Immediate(0), inst.Reg(0), inst.Reg(1))
	case insts.OpIseti:
		return false, m.ExecuteIseti(inst.Immediate(0), inst.Reg(0), inst.Reg(1))
	case insts.OpGetb:
		return false, m.ExecuteGetb(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpGeti:
		return false, m.ExecuteGeti(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpIgetb:
		return false, m.ExecuteIgetb(inst.Immediate(0), inst.Reg(0), inst.Reg(1))
	case insts.OpIgeti:
		return false, m.ExecuteIgeti(inst.Immediate(0), inst.Reg(0), inst.Reg(1))
	case insts.OpLast:
		return false, m.ExecuteLast(inst.Reg(0), inst.Reg(1))
	case insts.OpLength:
		return false, m.ExecuteLength(inst.Reg(0), inst.Reg(1))
	case insts.OpClone:
		return false, m.ExecuteClone(inst.Reg(0), inst.Reg(1))
	case insts.OpCopy:
		return false, m.ExecuteCopy(inst.Reg(0), inst.Reg(1), inst.Reg(2), inst.Reg(3), inst.Reg(4))
	case insts.OpCopyi:
		return false, m.ExecuteCopyi(inst.Immediate(0), inst.Immediate(1), inst.Immediate(2), inst.Reg(0), inst.Reg(1))

	case insts.OpSwpa:
		return false, m.ExecuteSwpa(inst.Address(0), inst.Address(1))
	case insts.OpSwpar:
		return false, m.ExecuteSwpar(inst.Reg(0), inst.Reg(1))
	case insts.OpSwpr:
		m.ExecuteSwpr(inst.Reg(0), inst.Reg(1))
		return false, nil

	case insts.OpAddi:
		return false, m.ExecuteAddi(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpSubi:
		return false, m.ExecuteSubi(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpMuli:
		return false, m.ExecuteMuli(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpDivi:
		return false, m.ExecuteDivi(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpModi:
		return false, m.ExecuteModi(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpAddu:
		return false, m.ExecuteAddu(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpSubu:
		return false, m.ExecuteSubu(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpMulu:
		return false, m.ExecuteMulu(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpDivu:
		return false, m.ExecuteDivu(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpModu:
		return false, m.ExecuteModu(inst.Reg(0), inst.Reg(1), inst.Reg(2))
	case insts.OpAddf:
		m.ExecuteAddf(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil
	case insts.OpSubf:
		m.ExecuteSubf(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil
	case insts.OpMulf:
		m.ExecuteMulf(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil
	case insts.OpDivf:
		m.ExecuteDivf(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil

	case insts.OpRotl:
		m.ExecuteRotl(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpRotli:
		m.ExecuteRotli(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpRotr:
		m.ExecuteRotr(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpRotri:
		m.ExecuteRotri(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpSll:
		m.ExecuteSll(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpSlli:
		m.ExecuteSlli(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpSrl:
		m.ExecuteSrl(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpSrli:
		m.ExecuteSrli(inst.Reg(0), inst.Immediate(0))
		return false, nil
	case insts.OpNot:
		m.ExecuteNot(inst.Reg(0))
		return false, nil
	case insts.OpAnd:
		m.ExecuteAnd(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil
	case insts.OpOr:
		m.ExecuteOr(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil
	case insts.OpXor:
		m.ExecuteXor(inst.Reg(0), inst.Reg(1), inst.Reg(2))
		return false, nil

	case insts.OpCmp:
		m.ExecuteCmp(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpCmpi:
		m.ExecuteCmpi(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpCmpf:
		m.ExecuteCmpf(inst.Reg(0), inst.Reg(1))
		return false, nil
	case insts.OpI2f:
		m.ExecuteI2f(inst.Reg(0))
		return false, nil
	case insts.OpF2i:
		m.ExecuteF2i(inst.Reg(0))
		return false, nil

	case insts.OpJmp:
		m.ExecuteJmp(inst.Address(0))
		return true, nil
	case insts.OpJeq:
		return m.ExecuteJeq(inst.Address(0)), nil
	case insts.OpJne:
		return m.ExecuteJne(inst.Address(0)), nil
	case insts.OpJge:
		return m.ExecuteJge(inst.Address(0)), nil
	case insts.OpJgt:
		return m.ExecuteJgt(inst.Address(0)), nil
	case insts.OpJle:
		return m.ExecuteJle(inst.Address(0)), nil
	case insts.OpJlt:
		return m.ExecuteJlt(inst.Address(0)), nil

	case insts.OpCall:
		m.ExecuteCall(inst.Address(0))
		return true, nil
	case insts.OpRet:
		m.ExecuteRet()
		return true, nil

	default:
		return false, &Error{Kind: Unknown, Message: "unrecognized opcode"}
	}
}
