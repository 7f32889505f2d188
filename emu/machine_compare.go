package emu

import (
	"math"

	"github.com/kestrel-systems/vxlvm/insts"
)

// RFL holds three condition bits in its low end, upper bits untouched
// by the cmp family: equal (bit 0), less-than (bit 1), greater-than
// (bit 2). Exactly one is set after an ordered comparison; cmpf's NaN
// case, which is neither less, equal, nor greater, clears all three.
// The jump family tests these bits individually.
const (
	flagsMask   = ^uint64(0b111)
	flagEqual   = uint64(0b001)
	flagLess    = uint64(0b010)
	flagGreater = uint64(0b100)
)

func setFlag(old uint64, less, equal, greater bool) uint64 {
	var v uint64
	switch {
	case equal:
		v = flagEqual
	case less:
		v = flagLess
	case greater:
		v = flagGreater
	}
	return old&flagsMask | v
}

// ExecuteCmp compares reg0 and reg1 as unsigned 64-bit integers and
// records the result in RFL's condition bits, preserving its upper bits.
func (m *Machine) ExecuteCmp(reg0, reg1 insts.Register) {
	a, b := m.regs.Get(reg0), m.regs.Get(reg1)
	m.regs.Set(insts.RFL, setFlag(m.regs.Get(insts.RFL), a < b, a == b, a > b))
}

// ExecuteCmpi compares reg0 and reg1 as signed 64-bit integers and
// records the result in RFL's condition bits, preserving its upper bits.
func (m *Machine) ExecuteCmpi(reg0, reg1 insts.Register) {
	a, b := int64(m.regs.Get(reg0)), int64(m.regs.Get(reg1))
	m.regs.Set(insts.RFL, setFlag(m.regs.Get(insts.RFL), a < b, a == b, a > b))
}

// ExecuteCmpf compares reg0 and reg1 as IEEE-754 float64 values and
// records the result in RFL's condition bits, preserving its upper bits.
// If either operand is NaN, none of the three bits are set.
func (m *Machine) ExecuteCmpf(reg0, reg1 insts.Register) {
	a, b := m.getFloat(reg0), m.getFloat(reg1)
	m.regs.Set(insts.RFL, setFlag(m.regs.Get(insts.RFL), a < b, a == b, a > b))
}

// ExecuteI2f converts reg's signed 64-bit integer value to an IEEE-754
// float64 and stores the float's bit pattern back into reg.
func (m *Machine) ExecuteI2f(reg insts.Register) {
	v := int64(m.regs.Get(reg))
	m.setFloat(reg, float64(v))
}

// ExecuteF2i truncates reg's IEEE-754 float64 value toward zero into a
// signed 64-bit integer and stores it back into reg.
func (m *Machine) ExecuteF2i(reg insts.Register) {
	f := m.getFloat(reg)
	if math.IsNaN(f) {
		m.regs.Set(reg, 0)
		return
	}
	m.regs.Set(reg, uint64(int64(f)))
}
