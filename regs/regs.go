// Package regs is the register-access capability shared by the peripheral
// definitions and drivers. Production firmware uses MMIO; host builds use a
// Window over mapped memory or the simulated register file in package sim.
package regs

// Bus performs 32-bit register accesses at absolute addresses.
// Implementations must not merge, split or reorder accesses.
type Bus interface {
	Load(addr uintptr) uint32
	Store(addr uintptr, v uint32)
}

// Reg is a single 32-bit register on a Bus.
// The method set follows TinyGo's volatile.Register32.
type Reg struct {
	bus  Bus
	addr uintptr
}

// At binds the register at addr.
func At(bus Bus, addr uintptr) Reg { return Reg{bus: bus, addr: addr} }

func (r Reg) Addr() uintptr { return r.addr }

// Get performs one load.
func (r Reg) Get() uint32 { return r.bus.Load(r.addr) }

// Set performs one store, with no prior load.
func (r Reg) Set(v uint32) { r.bus.Store(r.addr, v) }

// HasBits reports whether any of mask is set, with one load.
func (r Reg) HasBits(mask uint32) bool { return r.Get()&mask != 0 }

// SetBits is a read-modify-write. Never use it on write-only registers.
func (r Reg) SetBits(mask uint32) { r.Set(r.Get() | mask) }

// ClearBits is a read-modify-write.
func (r Reg) ClearBits(mask uint32) { r.Set(r.Get() &^ mask) }

// ReplaceBits writes value into the field mask<<pos (read-modify-write).
func (r Reg) ReplaceBits(value, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}

// Field extracts the field mask<<pos.
func (r Reg) Field(mask uint32, pos uint8) uint32 {
	return (r.Get() >> pos) & mask
}
