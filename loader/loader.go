// Package loader parses a VXL container: a fixed-layout header followed
// by an opaque, checksummed program payload.
package loader

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha3"
	"encoding/binary"
)

// Magic is the 4-byte literal every VXL file must begin with.
var Magic = [4]byte{0x65, 0x58, 0x56, 0x4C}

// Terminator is the sentinel byte that must follow the checksum field.
const Terminator = 0xAA

// ChecksumMask selects the hash algorithm from the header's flag byte:
// 0 = SHA2-224, 1 = SHA3-224.
const ChecksumMask = 0b0000_0001

// ChecksumSize is the width in bytes of the stored checksum, regardless
// of which algorithm produced it (both SHA2-224 and SHA3-224 are 28 bytes).
const ChecksumSize = 28

// headerFieldsSize is magic + version + payload size + start offset +
// flags + checksum, i.e. every fixed field up to but not including the
// terminator byte.
const headerFieldsSize = 4 + 1 + 8 + 8 + 1 + ChecksumSize

// HeaderSize is the total size of the header including its terminator
// byte; the program payload begins immediately after it.
const HeaderSize = headerFieldsSize + 1

// supportedVersions is the closed set of header versions this loader
// accepts.
var supportedVersions = map[byte]bool{0: true}

// Header is the parsed, validated fixed-layout VXL container header.
type Header struct {
	Version     byte
	PayloadSize uint64
	StartOffset uint64
	Flags       byte
	Checksum    [ChecksumSize]byte
}

// UsesSHA3 reports whether this header's checksum was computed with
// SHA3-224 rather than SHA2-224.
func (h Header) UsesSHA3() bool {
	return h.Flags&ChecksumMask != 0
}

// Parse validates a VXL container's header and returns it along with the
// trailing payload bytes. It does not verify the checksum; call
// VerifyChecksum separately once the caller has decided the cost is
// worth paying.
func Parse(data []byte) (*Header, []byte, error) {
	if len(data) < HeaderSize {
		return nil, nil, newError(NotEnoughBytesForHeader)
	}
	if !bytes.Equal(data[0:4], Magic[:]) {
		return nil, nil, newError(InvalidMagic)
	}

	version := data[4]
	if !supportedVersions[version] {
		return nil, nil, newError(UnsupportedVersion)
	}

	payloadSize := binary.LittleEndian.Uint64(data[5:13])
	startOffset := binary.LittleEndian.Uint64(data[13:21])
	flags := data[21]

	var checksum [ChecksumSize]byte
	copy(checksum[:], data[22:22+ChecksumSize])

	if data[headerFieldsSize] != Terminator {
		return nil, nil, newError(InvalidEndHeaderMarker)
	}

	payload := data[HeaderSize:]
	if uint64(len(payload)) != payloadSize {
		return nil, nil, newError(NonMatchingFileSize)
	}

	header := &Header{
		Version:     version,
		PayloadSize: payloadSize,
		StartOffset: startOffset,
		Flags:       flags,
		Checksum:    checksum,
	}
	return header, payload, nil
}

// VerifyChecksum hashes payload with the algorithm the header's flags
// select and compares it against the stored checksum.
func VerifyChecksum(h *Header, payload []byte) error {
	var digest [ChecksumSize]byte
	if h.UsesSHA3() {
		digest = sha3.Sum224(payload)
	} else {
		digest = sha256.Sum224(payload)
	}
	if !bytes.Equal(digest[:], h.Checksum[:]) {
		return newError(InvalidChecksum)
	}
	return nil
}

// Load parses a VXL container and verifies its checksum in one call,
// returning the validated header and payload.
func Load(data []byte) (*Header, []byte, error) {
	header, payload, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	if err := VerifyChecksum(header, payload); err != nil {
		return nil, nil, err
	}
	return header, payload, nil
}
