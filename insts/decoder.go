package insts

import "encoding/binary"

// Decoder consumes a byte stream incrementally and yields Instructions.
// Bytes can arrive in any chunking; Next blocks on nothing and simply
// reports UnexpectedEndOfBytes when the buffered bytes don't yet cover a
// full instruction.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns an empty incremental decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// AppendBytes makes more payload bytes available to Next.
func (d *Decoder) AppendBytes(b []byte) {
	d.buf = append(d.buf, b...)
}

// HasNext reports whether any buffered bytes remain to decode.
func (d *Decoder) HasNext() bool {
	return d.pos < len(d.buf)
}

// Next decodes and returns the instruction at the current position,
// advancing past it. The opcode byte is read first; unrecognized opcodes
// fail with UnknownImmediateCountForOpcode, since the immediate count is
// the first thing the decoder needs to know about an opcode's shape and
// an unknown opcode has none recorded.
func (d *Decoder) Next() (Instruction, error) {
	if d.pos >= len(d.buf) {
		return Instruction{}, newError(UnexpectedEndOfBytes)
	}

	op := Op(d.buf[d.pos])
	ar, ok := arities[op]
	if !ok {
		return Instruction{}, newError(UnknownImmediateCountForOpcode)
	}
	cursor := d.pos + 1

	imms := make([]uint64, ar.Immediates)
	for i := range imms {
		v, next, err := readU64(d.buf, cursor)
		if err != nil {
			return Instruction{}, err
		}
		imms[i] = v
		cursor = next
	}

	addrs := make([]uint64, ar.Addresses)
	for i := range addrs {
		v, next, err := readU64(d.buf, cursor)
		if err != nil {
			return Instruction{}, err
		}
		addrs[i] = v
		cursor = next
	}

	regs, cursor, err := readRegisters(d.buf, cursor, ar.Registers)
	if err != nil {
		return Instruction{}, err
	}

	d.pos = cursor
	return Instruction{Op: op, Immediates: imms, Addresses: addrs, Registers: regs}, nil
}

// readRegisters unpacks n 4-bit register indices from bytes starting at
// pos, two registers per byte, high nibble first. When n is odd the low
// nibble of the final byte is reserved and discarded.
func readRegisters(buf []byte, pos, n int) ([]Register, int, error) {
	nbytes := (n + 1) / 2
	if pos+nbytes > len(buf) {
		return nil, pos, newError(UnexpectedEndOfBytes)
	}

	regs := make([]Register, n)
	for i := 0; i < n; i++ {
		b := buf[pos+i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = (b >> 4) & 0x0F
		} else {
			nibble = b & 0x0F
		}
		reg, ok := DecodeRegister(nibble)
		if !ok {
			return nil, pos, newError(UnknownRegisterCountForOpcode)
		}
		regs[i] = reg
	}
	return regs, pos + nbytes, nil
}

func readU64(buf []byte, pos int) (uint64, int, error) {
	if pos+8 > len(buf) {
		return 0, pos, newError(UnexpectedEndOfBytes)
	}
	return binary.LittleEndian.Uint64(buf[pos : pos+8]), pos + 8, nil
}

// DecodeAll decodes a complete payload in one call, equivalent to feeding
// all of data to a fresh Decoder and draining it.
func DecodeAll(data []byte) ([]Instruction, error) {
	d := NewDecoder()
	d.AppendBytes(data)

	var out []Instruction
	for d.HasNext() {
		inst, err := d.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}
