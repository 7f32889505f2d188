package insts

// Instruction is a fully decoded VXL instruction: an opcode plus its
// operand tuple. Only the slices an opcode's arity calls for are
// populated; the others are left nil/empty.
type Instruction struct {
	Op         Op
	Immediates []uint64
	Addresses  []uint64
	Registers  []Register
}

// Immediate returns the i'th immediate as uint64. Callers reinterpret the
// bits as i64 or f64 as the opcode requires.
func (inst Instruction) Immediate(i int) uint64 { return inst.Immediates[i] }

// Address returns the i'th address operand.
func (inst Instruction) Address(i int) uint64 { return inst.Addresses[i] }

// Reg returns the i'th register operand.
func (inst Instruction) Reg(i int) Register { return inst.Registers[i] }
