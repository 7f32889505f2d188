package emu

import "github.com/kestrel-systems/vxlvm/insts"

// ExecuteJmp jumps unconditionally to addr.
func (m *Machine) ExecuteJmp(addr uint64) {
	m.ip = addr
}

func (m *Machine) branchIf(addr uint64, take bool) bool {
	if take {
		m.ip = addr
	}
	return take
}

// ExecuteJeq jumps to addr if the last comparison reported equal.
func (m *Machine) ExecuteJeq(addr uint64) bool {
	return m.branchIf(addr, m.regs.Get(insts.RFL)&flagEqual != 0)
}

// ExecuteJne jumps to addr if the last comparison reported not equal.
func (m *Machine) ExecuteJne(addr uint64) bool {
	return m.branchIf(addr, m.regs.Get(insts.RFL)&flagEqual == 0)
}

// ExecuteJge jumps to addr if the last comparison reported greater than
// or equal.
func (m *Machine) ExecuteJge(addr uint64) bool {
	flag := m.regs.Get(insts.RFL)
	return m.branchIf(addr, flag&flagGreater != 0 || flag&flagEqual != 0)
}

// ExecuteJgt jumps to addr if the last comparison reported strictly
// greater.
func (m *Machine) ExecuteJgt(addr uint64) bool {
	return m.branchIf(addr, m.regs.Get(insts.RFL)&flagGreater != 0)
}

// ExecuteJle jumps to addr if the last comparison reported less than or
// equal.
func (m *Machine) ExecuteJle(addr uint64) bool {
	flag := m.regs.Get(insts.RFL)
	return m.branchIf(addr, flag&flagLess != 0 || flag&flagEqual != 0)
}

// ExecuteJlt jumps to addr if the last comparison reported strictly
// less.
func (m *Machine) ExecuteJlt(addr uint64) bool {
	return m.branchIf(addr, m.regs.Get(insts.RFL)&flagLess != 0)
}

// ExecuteCall pushes RFP, then RSP, then the return address (ip+1) onto
// the stack at the current frame pointer, sets both RFP and RSP to the
// new top of the stack, and jumps to addr.
func (m *Machine) ExecuteCall(addr uint64) {
	frameBase := m.regs.Get(insts.RFP)
	m.stack.InsertU64(int(frameBase), frameBase)
	m.stack.InsertU64(int(frameBase)+8, m.regs.Get(insts.RSP))
	m.stack.InsertU64(int(frameBase)+16, m.ip+1)
	m.regs.Set(insts.RFP, frameBase+24)
	m.regs.Set(insts.RSP, frameBase+24)
	m.ip = addr
}

// ExecuteRet pops the return address, the saved RSP, and the saved RFP
// pushed by the matching call, in that order, restores both registers,
// and jumps back to the caller.
func (m *Machine) ExecuteRet() {
	frameTop := m.regs.Get(insts.RFP)
	retAddr, _ := m.stack.GetTopU64(int(frameTop))
	savedRSP, _ := m.stack.GetTopU64(int(frameTop) - 8)
	savedRFP, _ := m.stack.GetTopU64(int(frameTop) - 16)
	m.regs.Set(insts.RSP, savedRSP)
	m.regs.Set(insts.RFP, savedRFP)
	m.ip = retAddr
}
