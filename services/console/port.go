package console

import (
	"sync"

	"discobsp/serial"
)

// lockedPort serialises access to the channel between the reader goroutine
// and the transmit drain.
type lockedPort struct {
	mu *sync.Mutex
	p  *serial.Port
}

func (l lockedPort) Read(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Read(b)
}

func (l lockedPort) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Write(b)
}

func (l lockedPort) Buffered() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Buffered()
}
