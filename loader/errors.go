package loader

import "fmt"

// ErrorKind enumerates the disjoint ways a VXL container can fail to
// load.
type ErrorKind uint8

// Loader error kinds and their numeric codes.
const (
	NotEnoughBytesForHeader ErrorKind = iota
	UnsupportedVersion
	InvalidChecksum
	NonMatchingFileSize
	InvalidMagic
	InvalidEndHeaderMarker
)

var errorDescriptions = map[ErrorKind]string{
	NotEnoughBytesForHeader: "The supplied input does not contain enough bytes for the header.",
	UnsupportedVersion:      "The header declares a version this loader does not support.",
	InvalidChecksum:         "The computed checksum does not match the checksum stored in the header.",
	NonMatchingFileSize:     "The trailing payload length does not match the header's declared payload size.",
	InvalidMagic:            "The input does not begin with the VXL magic bytes.",
	InvalidEndHeaderMarker:  "The byte following the checksum is not the expected end-of-header marker.",
}

// Error is a structured loader failure carrying a stable numeric code.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string { return e.Describe() }

// Code returns the numeric code for this error's kind.
func (e *Error) Code() uint8 { return uint8(e.Kind) }

// Short renders the compact "Loader Error: N" form.
func (e *Error) Short() string { return fmt.Sprintf("Loader Error: %d", e.Code()) }

// Describe renders the full human-readable description.
func (e *Error) Describe() string { return errorDescriptions[e.Kind] }

func newError(kind ErrorKind) *Error { return &Error{Kind: kind} }
