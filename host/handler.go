// Package host implements the reference operating-system capability the
// VXL machine's syscall instruction defers to: terminal I/O, a
// file-descriptor table over the real filesystem, process execution,
// time-of-day, and recursive execution of nested VXL programs.
//
// spec.md names the conventional calls (exit, write-byte-terminal,
// write-terminal, read-byte-terminal, read-terminal, open/close/read/
// write/delete/move/copy-file, execute-file, execute-vxl-file,
// time-of-day) but assigns them no numeric IDs — the core treats the
// syscall immediate as opaque. The Call* constants below are this
// handler's own numbering, in the same order spec.md lists the names.
package host

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/kestrel-systems/vxlvm/emu"
	"github.com/kestrel-systems/vxlvm/host/fdtable"
	"github.com/kestrel-systems/vxlvm/insts"
	"github.com/kestrel-systems/vxlvm/loader"
)

// Conventional syscall numbers recognized by Handler.
const (
	CallExit uint64 = iota
	CallWriteByteTerminal
	CallWriteTerminal
	CallReadByteTerminal
	CallReadTerminal
	CallOpenFile
	CallCloseFile
	CallReadFile
	CallWriteFile
	CallDeleteFile
	CallMoveFile
	CallCopyFile
	CallExecuteFile
	CallExecuteVxlFile
	CallTimeOfDay
)

// errSentinel is written to ROU when a file/process operation fails.
// The syscall convention has no separate error channel, so callers
// distinguish failure from a real result by this reserved value.
const errSentinel = ^uint64(0)

// Handler is the reference emu.SyscallHandler: terminal I/O against
// configurable streams, real filesystem access through a fdtable.Table,
// and reentrant execution of host and nested-VXL programs.
//
// String arguments (file paths) are passed the same way write-terminal
// passes its message: a register holds a heap address, and the full
// contents of that heap block are the string's bytes.
type Handler struct {
	stdin  io.Reader
	stdout io.Writer
	fds    *fdtable.Table

	exited   bool
	exitCode int64
}

// New returns a Handler reading from stdin and writing to stdout.
func New(stdin io.Reader, stdout io.Writer) *Handler {
	return &Handler{stdin: stdin, stdout: stdout, fds: fdtable.New()}
}

// Exited reports whether the exit call has been invoked, and the code
// it was given.
func (h *Handler) Exited() (bool, int64) { return h.exited, h.exitCode }

// Execute implements emu.SyscallHandler.
func (h *Handler) Execute(call uint64, m *emu.Machine) (bool, error) {
	switch call {
	case CallExit:
		code := m.Registers().Get(insts.R0)
		h.exited = true
		h.exitCode = int64(code)
		m.Registers().Set(insts.ROU, code)
		m.Halt()
		return true, nil

	case CallWriteByteTerminal:
		b := byte(m.Registers().Get(insts.R0))
		_, err := h.stdout.Write([]byte{b})
		m.Registers().Set(insts.ROU, boolToResult(err == nil))
		return true, nil

	case CallWriteTerminal:
		block, ok := m.Heap().Retrieve(m.Registers().Get(insts.R0))
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		_, err := h.stdout.Write(block)
		m.Registers().Set(insts.ROU, boolToResult(err == nil))
		return true, nil

	case CallReadByteTerminal:
		var b [1]byte
		_, _ = h.stdin.Read(b[:])
		m.Registers().Set(insts.ROU, uint64(b[0]))
		return true, nil

	case CallReadTerminal:
		block, ok := m.Heap().Retrieve(m.Registers().Get(insts.R0))
		if !ok {
			m.Registers().Set(insts.ROU, 0)
			return true, nil
		}
		n, _ := h.stdin.Read(block)
		m.Registers().Set(insts.ROU, uint64(n))
		return true, nil

	case CallOpenFile:
		path, ok := h.pathAt(m, insts.R0)
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		fd, err := h.fds.Open(path, int(m.Registers().Get(insts.R1)), 0o644)
		if err != nil {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, fd)
		return true, nil

	case CallCloseFile:
		err := h.fds.Close(m.Registers().Get(insts.R0))
		m.Registers().Set(insts.ROU, boolToResult(err == nil))
		return true, nil

	case CallReadFile:
		block, ok := m.Heap().Retrieve(m.Registers().Get(insts.R1))
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		n, err := h.fds.Read(m.Registers().Get(insts.R0), block)
		if err != nil && n == 0 {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, uint64(n))
		return true, nil

	case CallWriteFile:
		block, ok := m.Heap().Retrieve(m.Registers().Get(insts.R1))
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		n, err := h.fds.Write(m.Registers().Get(insts.R0), block)
		if err != nil {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, uint64(n))
		return true, nil

	case CallDeleteFile:
		path, ok := h.pathAt(m, insts.R0)
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, boolToResult(h.fds.Delete(path) == nil))
		return true, nil

	case CallMoveFile:
		src, ok1 := h.pathAt(m, insts.R0)
		dst, ok2 := h.pathAt(m, insts.R1)
		if !ok1 || !ok2 {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, boolToResult(h.fds.Move(src, dst) == nil))
		return true, nil

	case CallCopyFile:
		src, ok1 := h.pathAt(m, insts.R0)
		dst, ok2 := h.pathAt(m, insts.R1)
		if !ok1 || !ok2 {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, boolToResult(h.fds.Copy(src, dst) == nil))
		return true, nil

	case CallExecuteFile:
		path, ok := h.pathAt(m, insts.R0)
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		cmd := exec.Command(path)
		cmd.Stdout = h.stdout
		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				m.Registers().Set(insts.ROU, uint64(exitErr.ExitCode()))
				return true, nil
			}
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, 0)
		return true, nil

	case CallExecuteVxlFile:
		path, ok := h.pathAt(m, insts.R0)
		if !ok {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		ret, err := h.runVXLFile(path)
		if err != nil {
			m.Registers().Set(insts.ROU, errSentinel)
			return true, nil
		}
		m.Registers().Set(insts.ROU, ret)
		return true, nil

	case CallTimeOfDay:
		m.Registers().Set(insts.ROU, uint64(time.Now().Unix()))
		return true, nil

	default:
		return false, nil
	}
}

// pathAt reads the heap block addressed by reg and turns it into a
// path string, the same "heap block is the string" convention
// write-terminal uses for its message argument.
func (h *Handler) pathAt(m *emu.Machine, reg insts.Register) (string, bool) {
	block, ok := m.Heap().Retrieve(m.Registers().Get(reg))
	if !ok {
		return "", false
	}
	return string(block), true
}

// runVXLFile loads, decodes, and runs the VXL file at path to
// completion against a fresh Machine sharing this same handler,
// demonstrating that the loader/decoder/machine pipeline is reentrant.
// It returns the nested machine's ROU.
func (h *Handler) runVXLFile(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	_, payload, err := loader.Load(data)
	if err != nil {
		return 0, err
	}
	instructions, err := insts.DecodeAll(payload)
	if err != nil {
		return 0, err
	}
	nested := emu.NewMachine(instructions)
	if err := nested.Run(h); err != nil {
		return 0, err
	}
	return nested.Registers().Get(insts.ROU), nil
}

func boolToResult(ok bool) uint64 {
	if ok {
		return 0
	}
	return errSentinel
}
