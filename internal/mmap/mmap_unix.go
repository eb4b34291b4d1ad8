//go:build unix

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps size bytes of the file at path, starting at off, shared and
// read-write. A regular file shorter than off+size is grown first; device
// files such as /dev/mem are mapped as they are.
func Open(path string, off int64, size int) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_SYNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("mmap: could not open %q: %w", path, err)
	}
	// the mapping outlives the descriptor.
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap: could not stat %q: %w", path, err)
	}
	if fi.Mode().IsRegular() && fi.Size() < off+int64(size) {
		err = f.Truncate(off + int64(size))
		if err != nil {
			return nil, fmt.Errorf("mmap: could not resize %q: %w", path, err)
		}
	}

	data, err := unix.Mmap(
		int(f.Fd()), off, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED,
	)
	if err != nil {
		return nil, fmt.Errorf("mmap: could not map %q [0x%x, +0x%x): %w", path, off, size, err)
	}
	return newMapped(data, unix.Munmap), nil
}
