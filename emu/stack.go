package emu

import "encoding/binary"

// DefaultStackSize is the default byte capacity of a machine's Stack.
const DefaultStackSize = 2_000_000

// Stack is a fixed-size byte buffer addressed by frame-pointer-relative
// pushes and pops. It never grows: operations that would run past its
// capacity fail instead.
type Stack struct {
	bytes []byte
}

// NewStack returns a zero-filled Stack of the given byte capacity.
func NewStack(size int) *Stack {
	return &Stack{bytes: make([]byte, size)}
}

// Len returns the stack's fixed capacity in bytes.
func (s *Stack) Len() int { return len(s.bytes) }

// Insert writes values starting at index, failing rather than growing
// the buffer if they would run past its capacity.
func (s *Stack) Insert(index int, values []byte) bool {
	if index < 0 || index+len(values) > len(s.bytes) {
		return false
	}
	copy(s.bytes[index:], values)
	return true
}

// InsertU64 writes v as 8 little-endian bytes starting at index.
func (s *Stack) InsertU64(index int, v uint64) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return s.Insert(index, buf[:])
}

// GetTop returns the amount-byte slice ending at top (exclusive), or
// false if top or amount fall outside the buffer.
func (s *Stack) GetTop(top, amount int) ([]byte, bool) {
	if top > len(s.bytes) || amount > len(s.bytes) || top < amount {
		return nil, false
	}
	return s.bytes[top-amount : top], true
}

// GetTopU64 reads the 8 little-endian bytes immediately below top.
func (s *Stack) GetTopU64(top int) (uint64, bool) {
	b, ok := s.GetTop(top, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}
