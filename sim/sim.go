// Package sim is a simulated STM32F4 register file for host builds and tests.
//
// It implements regs.Bus over the board's peripheral address range and
// reproduces the hardware side effects the drivers depend on: the write-only
// GPIO BSRR, and the USART2 SR/DR status and data semantics. Every access made
// through the Bus interface is logged so tests can assert exact sequences.
package sim

import (
	"io"
	"sync"

	"discobsp/device/stm32f4"
	"discobsp/internal/mmap"
	"discobsp/regs"
)

type Op uint8

const (
	OpLoad Op = iota
	OpStore
)

func (o Op) String() string {
	if o == OpStore {
		return "store"
	}
	return "load"
}

// Access is one logged register access.
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

// RegisterFile is safe for concurrent use. Its lock only covers single
// accesses; it does not make a driver's status-then-data sequence atomic.
type RegisterFile struct {
	mu     sync.Mutex
	mem    *regs.Window
	closer io.Closer
	log    []Access

	rx     []byte // rx[0] is the byte in the receive data register
	lastRX uint32
	tx     []byte
	txBusy bool
	auto   bool
}

// New returns an in-memory register file in its reset state.
func New() *RegisterFile {
	h := mmap.FromBytes(make([]byte, stm32f4.PeriphSize))
	return newFile(h)
}

// Open returns a register file stored in the memory-mapped file at path, so
// other processes can watch register state. Close releases the mapping.
func Open(path string) (*RegisterFile, error) {
	h, err := mmap.Open(path, 0, stm32f4.PeriphSize)
	if err != nil {
		return nil, err
	}
	r := newFile(h)
	r.closer = h
	return r, nil
}

func newFile(h *mmap.Handle) *RegisterFile {
	r := &RegisterFile{
		mem:  regs.NewWindow(h, stm32f4.PeriphBase, stm32f4.PeriphSize),
		auto: true,
	}
	r.syncSR()
	return r
}

func (r *RegisterFile) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Load implements regs.Bus.
func (r *RegisterFile) Load(addr uintptr) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.load(addr, true)
	r.log = append(r.log, Access{Op: OpLoad, Addr: addr, Value: v})
	return v
}

// Store implements regs.Bus.
func (r *RegisterFile) Store(addr uintptr, v uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log = append(r.log, Access{Op: OpStore, Addr: addr, Value: v})
	r.store(addr, v)
}

// Peek returns what a load at addr would return, without side effects and
// without logging.
func (r *RegisterFile) Peek(addr uintptr) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(addr, false)
}

func (r *RegisterFile) load(addr uintptr, consume bool) uint32 {
	switch {
	case isBSRR(addr):
		return 0
	case addr == stm32f4.USART2Base+stm32f4.USART_SR:
		return r.sr()
	case addr == stm32f4.USART2Base+stm32f4.USART_DR:
		if len(r.rx) == 0 {
			return r.lastRX
		}
		v := uint32(r.rx[0])
		if consume {
			r.lastRX = v
			r.rx = r.rx[1:]
			r.syncSR()
		}
		return v
	}
	return r.mem.Load(addr)
}

func (r *RegisterFile) store(addr uintptr, v uint32) {
	switch {
	case isBSRR(addr):
		odr := addr - stm32f4.GPIO_BSRR + stm32f4.GPIO_ODR
		cur := r.mem.Load(odr)
		// set wins over reset when both bits are written.
		cur = cur&^(v>>stm32f4.GPIO_BSRR_RESET_SHIFT) | v&0xFFFF
		r.mem.Store(odr, cur)
		return
	case addr == stm32f4.USART2Base+stm32f4.USART_SR:
		// RXNE and TC are rc_w0; the remaining status bits are read-only.
		if v&stm32f4.USART_SR_RXNE == 0 && len(r.rx) > 0 {
			r.rx = r.rx[1:]
		}
		r.syncSR()
		return
	case addr == stm32f4.USART2Base+stm32f4.USART_DR:
		r.tx = append(r.tx, byte(v))
		r.txBusy = !r.auto
		r.syncSR()
		return
	}
	r.mem.Store(addr, v)
}

func (r *RegisterFile) sr() uint32 {
	var v uint32
	if len(r.rx) > 0 {
		v |= stm32f4.USART_SR_RXNE
	}
	if !r.txBusy {
		v |= stm32f4.USART_SR_TXE | stm32f4.USART_SR_TC
	}
	return v
}

// syncSR mirrors the computed status into storage for external observers.
func (r *RegisterFile) syncSR() {
	r.mem.Store(stm32f4.USART2Base+stm32f4.USART_SR, r.sr())
}

func isBSRR(addr uintptr) bool {
	const last = stm32f4.GPIOABase + 11*stm32f4.GPIOStride
	if addr < stm32f4.GPIOABase || addr >= last {
		return false
	}
	return (addr-stm32f4.GPIOABase)%stm32f4.GPIOStride == stm32f4.GPIO_BSRR
}

var _ regs.Bus = (*RegisterFile)(nil)
