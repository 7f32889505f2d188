package insts

import "fmt"

// ErrorKind enumerates the disjoint ways a byte stream can fail to decode
// into a valid instruction.
type ErrorKind uint8

// Decoder error kinds and their numeric codes.
const (
	UnexpectedEndOfBytes ErrorKind = iota
	UnknownRegisterCountForOpcode
	UnknownImmediateCountForOpcode
	UnknownAddressCountForOpcode
	InvalidInstructionFormat
)

var errorDescriptions = map[ErrorKind]string{
	UnexpectedEndOfBytes:           "Reached the end of the byte stream before the current instruction finished decoding.",
	UnknownRegisterCountForOpcode:  "Unknown register count for opcode.",
	UnknownImmediateCountForOpcode: "Unknown immediate count for opcode.",
	UnknownAddressCountForOpcode:   "Unknown address count for opcode.",
	InvalidInstructionFormat:       "The decoded operand shape does not match any known instruction format.",
}

// Error is a structured decoder failure carrying a stable numeric code.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string { return e.Describe() }

// Code returns the numeric code for this error's kind.
func (e *Error) Code() uint8 { return uint8(e.Kind) }

// Short renders the compact "Validator Error: N" form.
func (e *Error) Short() string { return fmt.Sprintf("Validator Error: %d", e.Code()) }

// Describe renders the full human-readable description.
func (e *Error) Describe() string { return errorDescriptions[e.Kind] }

func newError(kind ErrorKind) *Error { return &Error{Kind: kind} }
