package emu

import "fmt"

// ErrorKind enumerates the disjoint ways machine execution can fail.
type ErrorKind uint8

// Machine error kinds and their numeric codes.
const (
	SystemHalted ErrorKind = iota
	NoInstruction
	AccessBeyondStackBounds
	FailedMalloc
	FailedFreeNoAddress
	FailedSetNoAddress
	FailedGetNoAddress
	IndexBeyondBounds
	IntegerOverflow
	UnsignedIntegerOverflow
	FloatOverflow
	AttemptedModuloZero
	UnknownSystemCall
)

// Unknown is the escape hatch for failures outside the enumerated set.
const Unknown ErrorKind = 255

// Error is a structured machine failure carrying a stable numeric code
// and, for the kinds that need it, the offending address/index/id.
type Error struct {
	Kind    ErrorKind
	Addr    uint64
	Index   uint64
	Bound   uint64
	Message string
}

func (e *Error) Error() string { return e.Describe() }

// Code returns the numeric code for this error's kind.
func (e *Error) Code() uint8 {
	if e.Kind == Unknown {
		return 255
	}
	return uint8(e.Kind)
}

// Short renders the compact "Machine Error: N" form.
func (e *Error) Short() string { return fmt.Sprintf("Machine Error: %d", e.Code()) }

// Describe renders the full human-readable description.
func (e *Error) Describe() string {
	switch e.Kind {
	case SystemHalted:
		return "The machine has already halted."
	case NoInstruction:
		return "The instruction pointer has run past the end of the instruction stream."
	case AccessBeyondStackBounds:
		return "The operation would access the stack outside its allocated bounds."
	case FailedMalloc:
		return "Failed to allocate a new heap block."
	case FailedFreeNoAddress:
		return fmt.Sprintf("Failed to free. No address %d.", e.Addr)
	case FailedSetNoAddress:
		return fmt.Sprintf("Failed to set. No address %d.", e.Addr)
	case FailedGetNoAddress:
		return fmt.Sprintf("Failed to get. No address %d.", e.Addr)
	case IndexBeyondBounds:
		return fmt.Sprintf("Index: %d, is beyond the bounds of %d.", e.Index, e.Bound)
	case IntegerOverflow:
		return "The operation overflowed an integer register."
	case UnsignedIntegerOverflow:
		return "The operation overflowed an unsigned integer register."
	case FloatOverflow:
		return "The operation overflowed a floating-point register."
	case AttemptedModuloZero:
		return "Attempted to compute a modulo by zero."
	case UnknownSystemCall:
		return fmt.Sprintf("Unknown system call %d", e.Addr)
	default:
		return e.Message
	}
}

func errSystemHalted() *Error            { return &Error{Kind: SystemHalted} }
func errNoInstruction() *Error           { return &Error{Kind: NoInstruction} }
func errAccessBeyondStackBounds() *Error { return &Error{Kind: AccessBeyondStackBounds} }
func errFailedMalloc() *Error            { return &Error{Kind: FailedMalloc} }
func errFailedFreeNoAddress(addr uint64) *Error {
	return &Error{Kind: FailedFreeNoAddress, Addr: addr}
}
func errFailedSetNoAddress(addr uint64) *Error {
	return &Error{Kind: FailedSetNoAddress, Addr: addr}
}
func errFailedGetNoAddress(addr uint64) *Error {
	return &Error{Kind: FailedGetNoAddress, Addr: addr}
}
func errIndexBeyondBounds(idx, bound uint64) *Error {
	return &Error{Kind: IndexBeyondBounds, Index: idx, Bound: bound}
}
func errIntegerOverflow() *Error     { return &Error{Kind: IntegerOverflow} }
func errAttemptedModuloZero() *Error { return &Error{Kind: AttemptedModuloZero} }
func errUnknownSystemCall(id uint64) *Error {
	return &Error{Kind: UnknownSystemCall, Addr: id}
}
