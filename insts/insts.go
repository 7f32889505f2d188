// Package insts decodes a VXL program payload into a typed instruction
// stream.
//
// A VXL instruction is a variable-length tagged encoding: one opcode byte,
// followed by a fixed (per-opcode) number of 8-byte little-endian
// immediates, then a fixed number of 8-byte little-endian addresses, then a
// fixed number of 4-bit register indices packed two to a byte, high nibble
// first. The package exposes both an incremental decoder (append bytes,
// pull instructions as they become available) and a one-shot
// DecodeAll for callers that already hold the full payload.
package insts
