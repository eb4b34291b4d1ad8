// Package mmap exposes a memory-mapped region as an io.ReaderAt/io.WriterAt.
package mmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
)

var errClosed = errors.New("mmap: closed")

// Handle is a view onto a mapped region. Handles returned by Open must be
// closed to unmap the region.
type Handle struct {
	data  []byte
	unmap func([]byte) error
}

// FromBytes wraps plain memory. Close only drops the reference.
func FromBytes(data []byte) *Handle {
	return &Handle{data: data}
}

func newMapped(data []byte, unmap func([]byte) error) *Handle {
	h := &Handle{data: data, unmap: unmap}
	runtime.SetFinalizer(h, (*Handle).Close)
	return h
}

// Close releases the mapping.
func (h *Handle) Close() error {
	if h == nil {
		return os.ErrInvalid
	}
	if h.data == nil {
		return nil
	}
	data := h.data
	h.data = nil
	runtime.SetFinalizer(h, nil)
	if h.unmap == nil {
		return nil
	}
	return h.unmap(data)
}

// Len returns the size of the mapped region.
func (h *Handle) Len() int { return len(h.data) }

// ReadAt implements io.ReaderAt.
func (h *Handle) ReadAt(p []byte, off int64) (int, error) {
	if h == nil {
		return 0, os.ErrInvalid
	}
	if h.data == nil {
		return 0, errClosed
	}
	if off < 0 || int64(len(h.data)) < off {
		return 0, fmt.Errorf("mmap: invalid ReadAt offset %d", off)
	}
	n := copy(p, h.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt.
func (h *Handle) WriteAt(p []byte, off int64) (int, error) {
	if h == nil {
		return 0, os.ErrInvalid
	}
	if h.data == nil {
		return 0, errClosed
	}
	if off < 0 || int64(len(h.data)) < off {
		return 0, fmt.Errorf("mmap: invalid WriteAt offset %d", off)
	}
	n := copy(h.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

var (
	_ io.ReaderAt = (*Handle)(nil)
	_ io.WriterAt = (*Handle)(nil)
	_ io.Closer   = (*Handle)(nil)
)
