//go:build tinygo

package regs

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO accesses peripheral registers directly through volatile loads and
// stores. Addresses must come from the peripheral definitions.
type MMIO struct{}

func (MMIO) Load(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (MMIO) Store(addr uintptr, v uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}

var _ Bus = MMIO{}
