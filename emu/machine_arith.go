package emu

import (
	"math"
	"math/bits"

	"github.com/kestrel-systems/vxlvm/insts"
)

// ExecuteAddi adds lhs and rhs as signed 64-bit integers into dst,
// honoring the machine's overflow behaviour.
func (m *Machine) ExecuteAddi(dst, lhs, rhs insts.Register) error {
	res, err := addI64(m.behaviour, int64(m.regs.Get(lhs)), int64(m.regs.Get(rhs)))
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(res))
	return nil
}

// ExecuteSubi subtracts rhs from lhs as signed 64-bit integers into dst.
func (m *Machine) ExecuteSubi(dst, lhs, rhs insts.Register) error {
	res, err := subI64(m.behaviour, int64(m.regs.Get(lhs)), int64(m.regs.Get(rhs)))
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(res))
	return nil
}

// ExecuteMuli multiplies lhs and rhs as signed 64-bit integers into dst.
func (m *Machine) ExecuteMuli(dst, lhs, rhs insts.Register) error {
	res, err := mulI64(m.behaviour, int64(m.regs.Get(lhs)), int64(m.regs.Get(rhs)))
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(res))
	return nil
}

// ExecuteDivi divides lhs by rhs as signed 64-bit integers into dst.
func (m *Machine) ExecuteDivi(dst, lhs, rhs insts.Register) error {
	res, err := divI64(m.behaviour, int64(m.regs.Get(lhs)), int64(m.regs.Get(rhs)))
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(res))
	return nil
}

// ExecuteModi computes lhs modulo rhs as signed 64-bit integers into
// dst. A zero divisor always fails, regardless of overflow behaviour.
func (m *Machine) ExecuteModi(dst, lhs, rhs insts.Register) error {
	res, err := modI64(int64(m.regs.Get(lhs)), int64(m.regs.Get(rhs)))
	if err != nil {
		return err
	}
	m.regs.Set(dst, uint64(res))
	return nil
}

// ExecuteAddu adds lhs and rhs as unsigned 64-bit integers into dst.
func (m *Machine) ExecuteAddu(dst, lhs, rhs insts.Register) error {
	res, err := addU64(m.behaviour, m.regs.Get(lhs), m.regs.Get(rhs))
	if err != nil {
		return err
	}
	m.regs.Set(dst, res)
	return nil
}

// ExecuteSubu subtracts rhs from lhs as unsigned 64-bit integers into
// dst.
func (m *Machine) ExecuteSubu(dst, lhs, rhs insts.Register) error {
	res, err := subU64(m.behaviour, m.regs.Get(lhs), m.regs.Get(rhs))
	if err != nil {
		return err
	}
	m.regs.Set(dst, res)
	return nil
}

// ExecuteMulu multiplies lhs and rhs as unsigned 64-bit integers into
// dst.
func (m *Machine) ExecuteMulu(dst, lhs, rhs insts.Register) error {
	res, err := mulU64(m.behaviour, m.regs.Get(lhs), m.regs.Get(rhs))
	if err != nil {
		return err
	}
	m.regs.Set(dst, res)
	return nil
}

// ExecuteDivu divides lhs by rhs as unsigned 64-bit integers into dst.
// Unsigned division cannot overflow on anything but a zero divisor,
// whose error kind still depends on the overflow behaviour.
func (m *Machine) ExecuteDivu(dst, lhs, rhs insts.Register) error {
	res, err := divU64(m.behaviour, m.regs.Get(lhs), m.regs.Get(rhs))
	if err != nil {
		return err
	}
	m.regs.Set(dst, res)
	return nil
}

// ExecuteModu computes lhs modulo rhs as unsigned 64-bit integers into
// dst. A zero divisor always fails.
func (m *Machine) ExecuteModu(dst, lhs, rhs insts.Register) error {
	res, err := modU64(m.regs.Get(lhs), m.regs.Get(rhs))
	if err != nil {
		return err
	}
	m.regs.Set(dst, res)
	return nil
}

// ExecuteAddf adds lhs and rhs as IEEE-754 float64 values into dst.
// Float arithmetic has no overflow mode: results that exceed the
// representable range become +/-Inf exactly as IEEE-754 specifies.
func (m *Machine) ExecuteAddf(dst, lhs, rhs insts.Register) {
	m.setFloat(dst, m.getFloat(lhs)+m.getFloat(rhs))
}

// ExecuteSubf subtracts rhs from lhs as IEEE-754 float64 values into
// dst.
func (m *Machine) ExecuteSubf(dst, lhs, rhs insts.Register) {
	m.setFloat(dst, m.getFloat(lhs)-m.getFloat(rhs))
}

// ExecuteMulf multiplies lhs and rhs as IEEE-754 float64 values into
// dst.
func (m *Machine) ExecuteMulf(dst, lhs, rhs insts.Register) {
	m.setFloat(dst, m.getFloat(lhs)*m.getFloat(rhs))
}

// ExecuteDivf divides lhs by rhs as IEEE-754 float64 values into dst.
func (m *Machine) ExecuteDivf(dst, lhs, rhs insts.Register) {
	m.setFloat(dst, m.getFloat(lhs)/m.getFloat(rhs))
}

func (m *Machine) getFloat(r insts.Register) float64 {
	return math.Float64frombits(m.regs.Get(r))
}

func (m *Machine) setFloat(r insts.Register, v float64) {
	m.regs.Set(r, math.Float64bits(v))
}

// clampToUint32 saturates v at math.MaxUint32. The shift and rotate
// family operate in 32-bit space regardless of the overflow behaviour
// the machine was built with.
func clampToUint32(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// ExecuteRotl rotates dst's value left by the amount in amountReg,
// within 32-bit space.
func (m *Machine) ExecuteRotl(dst, amountReg insts.Register) {
	v := clampToUint32(m.regs.Get(dst))
	amount := int(m.regs.Get(amountReg) % 32)
	m.regs.Set(dst, uint64(bits.RotateLeft32(v, amount)))
}

// ExecuteRotli rotates dst's value left by the literal amount imm.
func (m *Machine) ExecuteRotli(dst insts.Register, imm uint64) {
	v := clampToUint32(m.regs.Get(dst))
	m.regs.Set(dst, uint64(bits.RotateLeft32(v, int(imm%32))))
}

// ExecuteRotr rotates dst's value right by the amount in amountReg.
func (m *Machine) ExecuteRotr(dst, amountReg insts.Register) {
	v := clampToUint32(m.regs.Get(dst))
	amount := int(m.regs.Get(amountReg) % 32)
	m.regs.Set(dst, uint64(bits.RotateLeft32(v, -amount)))
}

// ExecuteRotri rotates dst's value right by the literal amount imm.
func (m *Machine) ExecuteRotri(dst insts.Register, imm uint64) {
	v := clampToUint32(m.regs.Get(dst))
	m.regs.Set(dst, uint64(bits.RotateLeft32(v, -int(imm%32))))
}

// ExecuteSll shifts dst's value left by the amount in amountReg, within
// 32-bit space.
func (m *Machine) ExecuteSll(dst, amountReg insts.Register) {
	v := clampToUint32(m.regs.Get(dst))
	m.regs.Set(dst, uint64(v<<shiftAmount(m.regs.Get(amountReg))))
}

// ExecuteSlli shifts dst's value left by the literal amount imm.
func (m *Machine) ExecuteSlli(dst insts.Register, imm uint64) {
	v := clampToUint32(m.regs.Get(dst))
	m.regs.Set(dst, uint64(v<<shiftAmount(imm)))
}

// ExecuteSrl shifts dst's value right by the amount in amountReg, within
// 32-bit space.
func (m *Machine) ExecuteSrl(dst, amountReg insts.Register) {
	v := clampToUint32(m.regs.Get(dst))
	m.regs.Set(dst, uint64(v>>shiftAmount(m.regs.Get(amountReg))))
}

// ExecuteSrli shifts dst's value right by the literal amount imm.
func (m *Machine) ExecuteSrli(dst insts.Register, imm uint64) {
	v := clampToUint32(m.regs.Get(dst))
	m.regs.Set(dst, uint64(v>>shiftAmount(imm)))
}

func shiftAmount(v uint64) uint32 {
	if v > 32 {
		return 32
	}
	return uint32(v)
}

// ExecuteNot flips every bit of dst's value.
func (m *Machine) ExecuteNot(dst insts.Register) {
	m.regs.Set(dst, ^m.regs.Get(dst))
}

// ExecuteAnd computes the bitwise AND of lhs and rhs into dst.
func (m *Machine) ExecuteAnd(dst, lhs, rhs insts.Register) {
	m.regs.Set(dst, m.regs.Get(lhs)&m.regs.Get(rhs))
}

// ExecuteOr computes the bitwise OR of lhs and rhs into dst.
func (m *Machine) ExecuteOr(dst, lhs, rhs insts.Register) {
	m.regs.Set(dst, m.regs.Get(lhs)|m.regs.Get(rhs))
}

// ExecuteXor computes the bitwise XOR of lhs and rhs into dst.
func (m *Machine) ExecuteXor(dst, lhs, rhs insts.Register) {
	m.regs.Set(dst, m.regs.Get(lhs)^m.regs.Get(rhs))
}
