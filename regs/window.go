package regs

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadWriterAt is the storage behind a Window, typically an mmap.Handle.
type ReadWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// Window maps absolute addresses [base, base+size) onto offsets of rw.
// Registers are little-endian, as on Cortex-M.
//
// Register accesses have no error path: a failing access panics.
type Window struct {
	rw   ReadWriterAt
	base uintptr
	size uintptr
}

// NewWindow returns a window of size bytes starting at base.
func NewWindow(rw ReadWriterAt, base, size uintptr) *Window {
	return &Window{rw: rw, base: base, size: size}
}

func (w *Window) Base() uintptr { return w.base }
func (w *Window) Size() uintptr { return w.size }

// Contains reports whether a 32-bit access at addr falls inside the window.
func (w *Window) Contains(addr uintptr) bool {
	return addr >= w.base && addr-w.base+4 <= w.size
}

func (w *Window) offset(addr uintptr) int64 {
	if !w.Contains(addr) {
		panic(fmt.Errorf("regs: address 0x%08x outside window [0x%08x, 0x%08x)", addr, w.base, w.base+w.size))
	}
	return int64(addr - w.base)
}

func (w *Window) Load(addr uintptr) uint32 {
	var buf [4]byte
	_, err := w.rw.ReadAt(buf[:], w.offset(addr))
	if err != nil {
		panic(fmt.Errorf("regs: could not load 0x%08x: %w", addr, err))
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func (w *Window) Store(addr uintptr, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.rw.WriteAt(buf[:], w.offset(addr))
	if err != nil {
		panic(fmt.Errorf("regs: could not store 0x%08x at 0x%08x: %w", v, addr, err))
	}
}

var _ Bus = (*Window)(nil)
