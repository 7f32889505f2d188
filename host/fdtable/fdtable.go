// Package fdtable manages host file descriptors on behalf of the VXL
// open/close/read/write/delete/move/copy-file syscalls.
package fdtable

import (
	"io"
	"os"
	"sync"
)

// entry is one open host file.
type entry struct {
	file *os.File
	path string
}

// Table maps small reused descriptor numbers to open host files,
// seeded with 0/1/2 for stdin/stdout/stderr.
type Table struct {
	mu      sync.Mutex
	entries map[uint64]*entry
	nextFD  uint64
}

// New returns a Table with stdin/stdout/stderr pre-registered at 0/1/2.
func New() *Table {
	t := &Table{
		entries: map[uint64]*entry{
			0: {file: os.Stdin, path: "stdin"},
			1: {file: os.Stdout, path: "stdout"},
			2: {file: os.Stderr, path: "stderr"},
		},
		nextFD: 3,
	}
	return t
}

// Open opens path on the host and returns its new descriptor number.
func (t *Table) Open(path string, flags int, mode os.FileMode) (uint64, error) {
	f, err := os.OpenFile(path, flags, mode)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.nextFD
	for t.entries[fd] != nil {
		fd++
	}
	t.entries[fd] = &entry{file: f, path: path}
	return fd, nil
}

// Close closes fd. Closing 0/1/2 only removes the entry; the underlying
// stream is left open since it belongs to the host process.
func (t *Table) Close(fd uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[fd]
	if !ok {
		return os.ErrInvalid
	}
	delete(t.entries, fd)
	if fd <= 2 {
		return nil
	}
	return e.file.Close()
}

// Read reads from fd into buf.
func (t *Table) Read(fd uint64, buf []byte) (int, error) {
	f, ok := t.get(fd)
	if !ok {
		return 0, os.ErrInvalid
	}
	return f.Read(buf)
}

// Write writes buf to fd.
func (t *Table) Write(fd uint64, buf []byte) (int, error) {
	f, ok := t.get(fd)
	if !ok {
		return 0, os.ErrInvalid
	}
	return f.Write(buf)
}

func (t *Table) get(fd uint64) (*os.File, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[fd]
	if !ok {
		return nil, false
	}
	return e.file, true
}

// Delete removes the named file from the host filesystem.
func (t *Table) Delete(path string) error {
	return os.Remove(path)
}

// Move renames src to dst on the host filesystem.
func (t *Table) Move(src, dst string) error {
	return os.Rename(src, dst)
}

// Copy copies src to dst on the host filesystem.
func (t *Table) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
