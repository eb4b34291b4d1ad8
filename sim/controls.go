package sim

import "discobsp/device/stm32f4"

// Inject queues bytes on the USART2 receiver. The first queued byte is the
// one visible in DR; RXNE stays set while any byte is queued.
func (r *RegisterFile) Inject(p ...byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rx = append(r.rx, p...)
	r.syncSR()
}

// Pending returns the number of received bytes not yet read.
func (r *RegisterFile) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rx)
}

// Transmitted returns a copy of every byte stored into USART2 DR.
func (r *RegisterFile) Transmitted() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.tx...)
}

// TakeTransmitted returns and forgets the transmitted bytes.
func (r *RegisterFile) TakeTransmitted() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.tx
	r.tx = nil
	return p
}

// SetAutoComplete selects whether a DR store leaves TXE set (the default) or
// holds it clear until CompleteTx.
func (r *RegisterFile) SetAutoComplete(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auto = on
	if on {
		r.txBusy = false
	}
	r.syncSR()
}

// CompleteTx finishes the byte in the transmit data register.
func (r *RegisterFile) CompleteTx() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txBusy = false
	r.syncSR()
}

// ODR returns the output data register of the GPIO port at base.
func (r *RegisterFile) ODR(base uintptr) uint32 {
	return r.Peek(base + stm32f4.GPIO_ODR)
}

// Accesses returns a copy of the access log.
func (r *RegisterFile) Accesses() []Access {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Access(nil), r.log...)
}

func (r *RegisterFile) ResetAccesses() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = r.log[:0]
}

// Stores returns the logged stores to addr, in order.
func (r *RegisterFile) Stores(addr uintptr) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var vs []uint32
	for _, a := range r.log {
		if a.Op == OpStore && a.Addr == addr {
			vs = append(vs, a.Value)
		}
	}
	return vs
}
