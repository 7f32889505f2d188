package emu

import "github.com/kestrel-systems/vxlvm/insts"

// ExecuteLdb loads the low byte of imm into dst, zero-extended.
func (m *Machine) ExecuteLdb(dst insts.Register, imm uint64) {
	m.regs.Set(dst, imm&0xFF)
}

// ExecuteLdi loads the 64-bit immediate imm into dst verbatim. Callers
// that need a signed value reinterpret the bits as int64.
func (m *Machine) ExecuteLdi(dst insts.Register, imm uint64) {
	m.regs.Set(dst, imm)
}

// ExecuteLdf loads imm, already encoded as IEEE-754 float64 bits, into
// dst verbatim.
func (m *Machine) ExecuteLdf(dst insts.Register, imm uint64) {
	m.regs.Set(dst, imm)
}

// ExecuteMov copies the value of src into dst.
func (m *Machine) ExecuteMov(dst, src insts.Register) {
	m.regs.Set(dst, m.regs.Get(src))
}
