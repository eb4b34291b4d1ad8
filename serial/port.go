package serial

import (
	"errors"

	"tinygo.org/x/drivers"

	"discobsp/errcode"
)

// Port adapts a Channel to drivers.UART so stream consumers and drivers
// written against that interface can use it.
type Port struct {
	ch *Channel
}

var _ drivers.UART = (*Port)(nil)

func NewPort(ch *Channel) *Port { return &Port{ch: ch} }

// Read drains the bytes that are ready now. It returns 0, nil when nothing
// is waiting.
func (p *Port) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		b, err := p.ch.ReadByte()
		if err != nil {
			if errors.Is(err, errcode.NotReady) {
				break
			}
			return n, err
		}
		buf[n] = b
		n++
	}
	return n, nil
}

// Write stores bytes while the transmitter accepts them. A short write
// returns errcode.NotReady together with the count written.
func (p *Port) Write(buf []byte) (int, error) {
	for i, b := range buf {
		if err := p.ch.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// Buffered reports 1 when a received byte is waiting; the hardware holds at
// most one.
func (p *Port) Buffered() int {
	if p.ch.Readable() {
		return 1
	}
	return 0
}
