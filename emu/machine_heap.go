package emu

import "github.com/kestrel-systems/vxlvm/insts"

// ExecuteMalloc allocates a zero-filled block of the size held in
// sizeReg and writes its address into dst.
func (m *Machine) ExecuteMalloc(dst, sizeReg insts.Register) error {
	m.regs.Set(dst, m.heap.Allocate(m.regs.Get(sizeReg)))
	return nil
}

// ExecuteMalloci allocates a zero-filled block of sizeImm bytes and
// writes its address into dst.
func (m *Machine) ExecuteMalloci(dst insts.Register, sizeImm uint64) error {
	m.regs.Set(dst, m.heap.Allocate(sizeImm))
	return nil
}

// ExecuteFree releases the block whose address is held in addrReg.
func (m *Machine) ExecuteFree(addrReg insts.Register) error {
	addr := m.regs.Get(addrReg)
	if !m.heap.Free(addr) {
		return errFailedFreeNoAddress(addr)
	}
	return nil
}

// ExecuteFreea releases the block at the literal address addr.
func (m *Machine) ExecuteFreea(addr uint64) error {
	if !m.heap.Free(addr) {
		return errFailedFreeNoAddress(addr)
	}
	return nil
}

// ExecuteSetb writes the low byte of valueReg at offsetReg within the
// block addressed by addrReg.
func (m *Machine) ExecuteSetb(addrReg, offsetReg, valueReg insts.Register) error {
	return m.heap.Set(m.regs.Get(addrReg), m.regs.Get(offsetReg), byte(m.regs.Get(valueReg)))
}

// ExecuteSeti writes the 8-byte value in valueReg at offsetReg within
// the block addressed by addrReg.
func (m *Machine) ExecuteSeti(addrReg, offsetReg, valueReg insts.Register) error {
	return m.heap.SetWord(m.regs.Get(addrReg), m.regs.Get(offsetReg), m.regs.Get(valueReg))
}

// ExecuteIsetb writes the low byte of valueReg at the literal offset
// offsetImm within the block addressed by addrReg.
func (m *Machine) ExecuteIsetb(offsetImm uint64, addrReg, valueReg insts.Register) error {
	return m.heap.Set(m.regs.Get(addrReg), offsetImm, byte(m.regs.Get(valueReg)))
}

// ExecuteIseti writes the 8-byte value in valueReg at the literal
// offset offsetImm within the block addressed by addrReg.
func (m *Machine) ExecuteIseti(offsetImm uint64, addrReg, valueReg insts.Register) error {
	return m.heap.SetWord(m.regs.Get(addrReg), offsetImm, m.regs.Get(valueReg))
}

// ExecuteGetb reads the byte at offsetReg within the block addressed by
// addrReg into dst.
func (m *Machine) ExecuteGetb(dst, addrReg, offsetReg insts.Register) error {
	v, err := m.heap.Get(m.regs.Get(addrReg), m.regs.Get(offsetReg))
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(v))
	return nil
}

// ExecuteGeti reads the 8-byte word at offsetReg within the block
// addressed by addrReg into dst.
func (m *Machine) ExecuteGeti(dst, addrReg, offsetReg insts.Register) error {
	v, err := m.heap.GetWord(m.regs.Get(addrReg), m.regs.Get(offsetReg))
	if err != nil {
		return err
	}
	m.regs.Set(dst, v)
	return nil
}

// ExecuteIgetb reads the byte at the literal offset offsetImm within the
// block addressed by addrReg into dst.
func (m *Machine) ExecuteIgetb(offsetImm uint64, dst, addrReg insts.Register) error {
	v, err := m.heap.Get(m.regs.Get(addrReg), offsetImm)
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(v))
	return nil
}

// ExecuteIgeti reads the 8-byte word at the literal offset offsetImm
// within the block addressed by addrReg into dst.
func (m *Machine) ExecuteIgeti(offsetImm uint64, dst, addrReg insts.Register) error {
	v, err := m.heap.GetWord(m.regs.Get(addrReg), offsetImm)
	if err != nil {
		return err
	}
	m.regs.Set(dst, v)
	return nil
}

// ExecuteLast reads the final byte of the block addressed by addrReg
// into dst.
func (m *Machine) ExecuteLast(dst, addrReg insts.Register) error {
	addr := m.regs.Get(addrReg)
	length, ok := m.heap.Length(addr)
	if !ok {
		return errFailedGetNoAddress(addr)
	}
	if length == 0 {
		return errIndexBeyondBounds(1, 0)
	}
	v, err := m.heap.Get(addr, length-1)
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(v))
	return nil
}

// ExecuteLength writes the byte length of the block addressed by
// addrReg into dst.
func (m *Machine) ExecuteLength(dst, addrReg insts.Register) error {
	addr := m.regs.Get(addrReg)
	length, ok := m.heap.Length(addr)
	if !ok {
		return errFailedGetNoAddress(addr)
	}
	m.regs.Set(dst, length)
	return nil
}

// ExecuteClone duplicates the block addressed by srcReg into a freshly
// allocated block and writes its address into dst.
func (m *Machine) ExecuteClone(dst, srcReg insts.Register) error {
	addr := m.regs.Get(srcReg)
	block, ok := m.heap.Retrieve(addr)
	if !ok {
		return errFailedGetNoAddress(addr)
	}
	m.regs.Set(dst, m.heap.AllocateWith(block))
	return nil
}

// ExecuteCopy copies lengthReg bytes from srcAddrReg at srcOffsetReg
// into dstAddrReg at dstOffsetReg.
func (m *Machine) ExecuteCopy(dstAddrReg, dstOffsetReg, srcAddrReg, srcOffsetReg, lengthReg insts.Register) error {
	return m.copyBytes(m.regs.Get(srcAddrReg), m.regs.Get(srcOffsetReg),
		m.regs.Get(dstAddrReg), m.regs.Get(dstOffsetReg), m.regs.Get(lengthReg))
}

// ExecuteCopyi copies lengthImm bytes from srcAddrReg at the literal
// offset srcOffsetImm into dstAddrReg at the literal offset
// dstOffsetImm.
func (m *Machine) ExecuteCopyi(dstOffsetImm, srcOffsetImm, lengthImm uint64, dstAddrReg, srcAddrReg insts.Register) error {
	return m.copyBytes(m.regs.Get(srcAddrReg), srcOffsetImm,
		m.regs.Get(dstAddrReg), dstOffsetImm, lengthImm)
}

func (m *Machine) copyBytes(srcAddr, srcOffset, dstAddr, dstOffset, length uint64) error {
	for i := uint64(0); i < length; i++ {
		b, err := m.heap.Get(srcAddr, srcOffset+i)
		if err != nil {
			return err
		}
		if err := m.heap.Set(dstAddr, dstOffset+i, b); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteSwpa exchanges the heap blocks stored at the two literal
// addresses addr1 and addr2.
func (m *Machine) ExecuteSwpa(addr1, addr2 uint64) error {
	return m.swapBlocks(addr1, addr2)
}

// ExecuteSwpar exchanges the heap blocks whose addresses are held in
// reg0 and reg1.
func (m *Machine) ExecuteSwpar(reg0, reg1 insts.Register) error {
	return m.swapBlocks(m.regs.Get(reg0), m.regs.Get(reg1))
}

func (m *Machine) swapBlocks(addr1, addr2 uint64) error {
	b1, ok1 := m.heap.Take(addr1)
	if !ok1 {
		return errFailedGetNoAddress(addr1)
	}
	b2, ok2 := m.heap.Take(addr2)
	if !ok2 {
		m.heap.AssignEmpty(addr1, b1)
		return errFailedGetNoAddress(addr2)
	}
	m.heap.AssignEmpty(addr1, b2)
	m.heap.AssignEmpty(addr2, b1)
	return nil
}

// ExecuteSwpr exchanges the values held in reg0 and reg1.
func (m *Machine) ExecuteSwpr(reg0, reg1 insts.Register) {
	a, b := m.regs.Get(reg0), m.regs.Get(reg1)
	m.regs.Set(reg0, b)
	m.regs.Set(reg1, a)
}
