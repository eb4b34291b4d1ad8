package uartio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"discobsp/errcode"
)

// --- minimal fake UART implementing drivers.UART ---

type fakeUART struct {
	mu sync.Mutex
	rx []byte
}

func (f *fakeUART) inject(b []byte) {
	f.mu.Lock()
	f.rx = append(f.rx, b...)
	f.mu.Unlock()
}

func (f *fakeUART) Write(p []byte) (int, error) { return len(p), nil }
func (f *fakeUART) Buffered() int               { f.mu.Lock(); n := len(f.rx); f.mu.Unlock(); return n }
func (f *fakeUART) Read(p []byte) (int, error) {
	f.mu.Lock()
	n := copy(p, f.rx)
	f.rx = f.rx[n:]
	f.mu.Unlock()
	return n, nil
}

// --- helpers ---

func recvEvent(ch <-chan Event, d time.Duration) (Event, bool) {
	select {
	case ev := <-ch:
		return ev, true
	case <-time.After(d):
		return Event{}, false
	}
}

// --- tests ---

func TestUARTWorker_BytesMode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u := &fakeUART{}
	w := New(8)
	stop, err := w.Register(ctx, ReaderCfg{
		DevID:    "u1",
		Port:     u,
		Mode:     "bytes",
		MaxFrame: 16,
		Poll:     time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	defer stop()

	u.inject([]byte("abc"))
	ev, ok := recvEvent(w.Events(), time.Second)
	if !ok {
		t.Fatalf("timeout waiting for rx")
	}
	if ev.DevID != "u1" || ev.Dir != "rx" {
		t.Errorf("unexpected meta: %+v", ev)
	}
	if string(ev.Data) != "abc" {
		t.Errorf("unexpected data: %q", string(ev.Data))
	}
	if ev.TSms == 0 {
		t.Errorf("timestamp not set")
	}

	// Larger than MaxFrame: split into frame-sized chunks.
	u.inject([]byte("0123456789abcdefXYZ"))
	var got []byte
	for len(got) < 19 {
		ev, ok := recvEvent(w.Events(), time.Second)
		if !ok {
			t.Fatalf("timeout after %q", got)
		}
		if len(ev.Data) > 16 {
			t.Fatalf("chunk exceeds MaxFrame: %d", len(ev.Data))
		}
		got = append(got, ev.Data...)
	}
	if string(got) != "0123456789abcdefXYZ" {
		t.Errorf("unexpected data: %q", got)
	}
}

func TestUARTWorker_LinesMode_NewlineAndIdleFlush(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u := &fakeUART{}
	w := New(8)
	stop, err := w.Register(ctx, ReaderCfg{
		DevID:     "u2",
		Port:      u,
		Mode:      "lines",
		MaxFrame:  32,
		IdleFlush: 30 * time.Millisecond,
		Poll:      time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	defer stop()

	u.inject([]byte("a"))
	ev, ok := recvEvent(w.Events(), 500*time.Millisecond)
	if !ok {
		t.Fatalf("idle flush timeout")
	}
	if got := string(ev.Data); got != "a" {
		t.Errorf("idle flush got %q want %q", got, "a")
	}

	u.inject([]byte("hi\r\nthere\n"))
	for _, want := range []string{"hi", "there"} {
		ev, ok = recvEvent(w.Events(), time.Second)
		if !ok {
			t.Fatalf("timeout waiting for %q", want)
		}
		if got := string(ev.Data); got != want {
			t.Errorf("line got %q want %q", got, want)
		}
	}
}

func TestUARTWorker_LinesMode_Truncates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u := &fakeUART{}
	w := New(8)
	stop, _ := w.Register(ctx, ReaderCfg{Port: u, Mode: "lines", MaxFrame: 16, Poll: time.Millisecond})
	defer stop()

	u.inject([]byte("0123456789abcdefOVERFLOW\n"))
	ev, ok := recvEvent(w.Events(), time.Second)
	if !ok {
		t.Fatalf("timeout")
	}
	if got := string(ev.Data); got != "0123456789abcdef" {
		t.Errorf("got %q", got)
	}
}

func TestUARTWorker_StopAndNilPort(t *testing.T) {
	w := New(1)
	if _, err := w.Register(context.Background(), ReaderCfg{}); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("nil port: got %v", err)
	}

	u := &fakeUART{}
	stop, err := w.Register(context.Background(), ReaderCfg{Port: u, Poll: time.Millisecond})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	stop()
	time.Sleep(20 * time.Millisecond)
	u.inject([]byte("late"))
	if ev, ok := recvEvent(w.Events(), 50*time.Millisecond); ok {
		t.Fatalf("event after stop: %+v", ev)
	}
}

func TestEmitTX(t *testing.T) {
	w := New(8)
	w.EmitTX("u3", []byte("0123456789abcdefghij"), 16)

	ev, _ := recvEvent(w.Events(), time.Second)
	if ev.Dir != "tx" || string(ev.Data) != "0123456789abcdef" {
		t.Fatalf("first chunk: %+v", ev)
	}
	ev, _ = recvEvent(w.Events(), time.Second)
	if string(ev.Data) != "ghij" {
		t.Fatalf("second chunk: %q", ev.Data)
	}
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		in   ReaderCfg
		want ReaderCfg
	}{
		{"defaults", ReaderCfg{}, ReaderCfg{Mode: "bytes", MaxFrame: 16, Poll: time.Millisecond}},
		{"clamped", ReaderCfg{Mode: "lines", MaxFrame: 1000, IdleFlush: time.Minute, Poll: time.Second},
			ReaderCfg{Mode: "lines", MaxFrame: 256, IdleFlush: 2 * time.Second, Poll: 100 * time.Millisecond}},
		{"from baud", ReaderCfg{Mode: "bytes", MaxFrame: 64, Baud: 9600},
			ReaderCfg{Mode: "bytes", MaxFrame: 64, Baud: 9600, Poll: 10 * (time.Second / 9600)}},
		{"fast baud", ReaderCfg{MaxFrame: 64, Baud: 1_000_000},
			ReaderCfg{Mode: "bytes", MaxFrame: 64, Baud: 1_000_000, Poll: 50 * time.Microsecond}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.normalise(); got != tc.want {
				t.Fatalf("normalise: got %+v, want %+v", got, tc.want)
			}
		})
	}
}
