//go:build !unix

package mmap

import "errors"

// Open is only available on unix hosts.
func Open(path string, off int64, size int) (*Handle, error) {
	return nil, errors.New("mmap: not supported on this platform")
}
