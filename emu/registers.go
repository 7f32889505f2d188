package emu

import "github.com/kestrel-systems/vxlvm/insts"

// registerCount is the fixed width of the register bank (spec.md: 16
// slots, R0..R11 general purpose plus ROU/RFP/RSP/RFL).
const registerCount = 16

// RegisterFile is the machine's 16-slot 64-bit register bank.
//
// wrapping selects the behavior of AddValue/SubValue, the helpers the
// stack's push/pop instructions use to move RFP. This is independent of
// the Machine-level OverflowBehaviour that governs the signed/unsigned
// arithmetic opcodes: the original source keeps these two selectors
// separate, and this module preserves that distinction rather than
// collapsing them into one mode.
type RegisterFile struct {
	slots    [registerCount]uint64
	wrapping bool
}

// NewRegisterFile returns a zeroed register bank. wrapping selects
// wrap-on-overflow (true) or clamp-at-bounds (false, the default) for
// AddValue/SubValue.
func NewRegisterFile(wrapping bool) *RegisterFile {
	return &RegisterFile{wrapping: wrapping}
}

// Get returns the value held in r. An out-of-range register is a
// programmer error, matching spec.md's register bank invariant.
func (rf *RegisterFile) Get(r insts.Register) uint64 {
	if int(r) >= registerCount {
		panic("register index out of range")
	}
	return rf.slots[r]
}

// Set stores v into r.
func (rf *RegisterFile) Set(r insts.Register, v uint64) {
	if int(r) >= registerCount {
		panic("register index out of range")
	}
	rf.slots[r] = v
}

// AddValue adds delta to the value in r, wrapping or clamping at
// math.MaxUint64 depending on how the register file was constructed.
func (rf *RegisterFile) AddValue(r insts.Register, delta uint64) {
	cur := rf.Get(r)
	if rf.wrapping {
		rf.Set(r, cur+delta)
		return
	}
	sum := cur + delta
	if sum < cur {
		sum = ^uint64(0)
	}
	rf.Set(r, sum)
}

// SubValue subtracts delta from the value in r, wrapping or clamping at
// zero depending on how the register file was constructed.
func (rf *RegisterFile) SubValue(r insts.Register, delta uint64) {
	cur := rf.Get(r)
	if rf.wrapping {
		rf.Set(r, cur-delta)
		return
	}
	if delta > cur {
		rf.Set(r, 0)
		return
	}
	rf.Set(r, cur-delta)
}
