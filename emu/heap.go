package emu

import (
	"container/heap"
	"encoding/binary"
)

// Heap is an address-keyed byte-block allocator. Addresses are dense
// small integers: freeing a block enqueues its key for reuse, and the
// next allocation picks the smallest enqueued key if one exists, else
// issues a key equal to the current block count.
type Heap struct {
	blocks map[uint64][]byte
	freed  *freedAddresses
}

// NewHeap returns an empty Heap.
func NewHeap() *Heap {
	fa := freedAddresses{}
	return &Heap{blocks: map[uint64][]byte{}, freed: &fa}
}

// freedAddresses is a min-heap of reusable addresses.
type freedAddresses []uint64

func (f freedAddresses) Len() int             { return len(f) }
func (f freedAddresses) Less(i, j int) bool   { return f[i] < f[j] }
func (f freedAddresses) Swap(i, j int)        { f[i], f[j] = f[j], f[i] }
func (f *freedAddresses) Push(x interface{})  { *f = append(*f, x.(uint64)) }
func (f *freedAddresses) Pop() interface{} {
	old := *f
	n := len(old)
	v := old[n-1]
	*f = old[:n-1]
	return v
}

func (h *Heap) nextAddress() uint64 {
	if h.freed.Len() > 0 {
		return heap.Pop(h.freed).(uint64)
	}
	return uint64(len(h.blocks))
}

// Allocate reserves a new zero-filled block of size bytes, returning its
// address.
func (h *Heap) Allocate(size uint64) uint64 {
	addr := h.nextAddress()
	h.blocks[addr] = make([]byte, size)
	return addr
}

// AllocateWith reserves a new block whose contents are a copy of data.
func (h *Heap) AllocateWith(data []byte) uint64 {
	addr := h.nextAddress()
	block := make([]byte, len(data))
	copy(block, data)
	h.blocks[addr] = block
	return addr
}

// AssignEmpty installs data at addr, failing if addr is already
// occupied.
func (h *Heap) AssignEmpty(addr uint64, data []byte) bool {
	if _, occupied := h.blocks[addr]; occupied {
		return false
	}
	block := make([]byte, len(data))
	copy(block, data)
	h.blocks[addr] = block
	return true
}

// Free releases the block at addr, enqueuing it for reuse. Freeing the
// highest-numbered address while no other freed address is waiting is
// not enqueued: the next allocation would naturally reissue it as the
// new block count, so recycling it explicitly would be redundant.
func (h *Heap) Free(addr uint64) bool {
	if _, ok := h.blocks[addr]; !ok {
		return false
	}
	delete(h.blocks, addr)
	if addr != uint64(len(h.blocks)) || h.freed.Len() > 0 {
		heap.Push(h.freed, addr)
	}
	return true
}

// Retrieve returns the block at addr without removing it.
func (h *Heap) Retrieve(addr uint64) ([]byte, bool) {
	b, ok := h.blocks[addr]
	return b, ok
}

// Take removes and returns the block at addr.
func (h *Heap) Take(addr uint64) ([]byte, bool) {
	b, ok := h.blocks[addr]
	if ok {
		delete(h.blocks, addr)
	}
	return b, ok
}

// Set writes a single byte at offset within the block at addr.
func (h *Heap) Set(addr, offset uint64, value byte) error {
	block, ok := h.blocks[addr]
	if !ok {
		return errFailedSetNoAddress(addr)
	}
	if offset >= uint64(len(block)) {
		return errIndexBeyondBounds(offset, uint64(len(block)))
	}
	block[offset] = value
	return nil
}

// Get reads a single byte at offset within the block at addr.
func (h *Heap) Get(addr, offset uint64) (byte, error) {
	block, ok := h.blocks[addr]
	if !ok {
		return 0, errFailedGetNoAddress(addr)
	}
	if offset >= uint64(len(block)) {
		return 0, errIndexBeyondBounds(offset, uint64(len(block)))
	}
	return block[offset], nil
}

// SetWord writes an 8-byte little-endian value at offset within the
// block at addr. Writing exactly up to the end of the block
// (offset+8 == len) is rejected, not just writes that would overrun it.
func (h *Heap) SetWord(addr, offset uint64, value uint64) error {
	block, ok := h.blocks[addr]
	if !ok {
		return errFailedSetNoAddress(addr)
	}
	length := uint64(len(block))
	if offset+8 >= length {
		return errIndexBeyondBounds(offset+8, length)
	}
	binary.LittleEndian.PutUint64(block[offset:offset+8], value)
	return nil
}

// GetWord reads an 8-byte little-endian value at offset within the block
// at addr. Reading exactly up to the end of the block (offset+8 == len)
// is allowed.
func (h *Heap) GetWord(addr, offset uint64) (uint64, error) {
	block, ok := h.blocks[addr]
	if !ok {
		return 0, errFailedGetNoAddress(addr)
	}
	length := uint64(len(block))
	if offset+8 > length {
		return 0, errIndexBeyondBounds(offset+8, length)
	}
	return binary.LittleEndian.Uint64(block[offset : offset+8]), nil
}

// Length returns the length of the block at addr.
func (h *Heap) Length(addr uint64) (uint64, bool) {
	block, ok := h.blocks[addr]
	if !ok {
		return 0, false
	}
	return uint64(len(block)), true
}

// TotalAllocated sums the lengths of every live block.
func (h *Heap) TotalAllocated() uint64 {
	var total uint64
	for _, b := range h.blocks {
		total += uint64(len(b))
	}
	return total
}
