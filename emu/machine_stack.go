package emu

import "github.com/kestrel-systems/vxlvm/insts"

// ExecutePush writes src's value onto the stack at the current frame
// pointer and advances RFP by 8.
func (m *Machine) ExecutePush(src insts.Register) error {
	top := m.regs.Get(insts.RFP)
	if !m.stack.InsertU64(int(top), m.regs.Get(src)) {
		return errAccessBeyondStackBounds()
	}
	m.regs.AddValue(insts.RFP, 8)
	return nil
}

// ExecutePop retreats RFP by 8 and loads the word it now points past
// into dst.
func (m *Machine) ExecutePop(dst insts.Register) error {
	top := m.regs.Get(insts.RFP)
	if top < 8 {
		return errAccessBeyondStackBounds()
	}
	v, ok := m.stack.GetTopU64(int(top))
	if !ok {
		return errAccessBeyondStackBounds()
	}
	m.regs.SubValue(insts.RFP, 8)
	m.regs.Set(dst, v)
	return nil
}

// ExecuteSget loads into dst the word stored in the 8 bytes immediately
// below the stack offset held in idxReg, without moving the frame
// pointer.
func (m *Machine) ExecuteSget(dst, idxReg insts.Register) error {
	idx := m.regs.Get(idxReg)
	v, ok := m.stack.GetTopU64(int(idx))
	if !ok {
		return errAccessBeyondStackBounds()
	}
	m.regs.Set(dst, v)
	return nil
}
