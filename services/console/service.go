// Package console is the board's serial echo console. Received lines are
// echoed back and the user LEDs show activity:
//
//	green   heartbeat, toggled every Heartbeat
//	orange  bytes received during the last heartbeat
//	blue    toggled per received line (per chunk in bytes mode)
//	red     a TX echo was dropped; cleared when the backlog empties
package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"discobsp/device/stm32f4"
	"discobsp/errcode"
	"discobsp/internal/uartio"
	"discobsp/led"
	"discobsp/serial"
	"discobsp/x/mathx"
	"discobsp/x/timex"
)

const devID = "usart2"

type Stats struct {
	RXBytes  uint32
	Lines    uint32
	TXBytes  uint32
	TXFrames uint32 // echo frames reported by the worker
	TXDrops  uint32
}

type Service struct {
	periph stm32f4.Peripherals
	params Params

	leds *led.Set
	ch   *serial.Channel
	port lockedPort

	tx     []byte
	green  bool
	blue   bool
	red    bool
	rxSeen bool

	mu    sync.Mutex // guards stats
	stats Stats
}

func New(p stm32f4.Peripherals, params Params) *Service {
	return &Service{periph: p, params: params}
}

// Init configures the LEDs and the serial channel. An unsupported baud rate
// is returned as errcode.BaudUnsupported.
func (s *Service) Init() error {
	params, err := s.params.normalise()
	if err != nil {
		return err
	}
	s.params = params

	s.leds = led.Init(s.periph.GPIOD, s.periph.RCC)
	s.leds.Off()

	ch := serial.New(s.periph.USART2)
	if err := ch.Init(s.periph.GPIOA, s.periph.RCC, params.Baud); err != nil {
		println("Warn:", "console serial init failed:", err.Error())
		s.leds.Red().On()
		return err
	}
	s.ch = ch
	s.port = lockedPort{mu: new(sync.Mutex), p: serial.NewPort(ch)}
	s.tx = make([]byte, 0, params.TXBacklog)

	println("Info:", "console ready on", devID, "at", params.Baud, "baud, effective", ch.Baud())
	return nil
}

func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Run polls the channel until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if s.ch == nil {
		return &errcode.E{C: errcode.Error, Op: "console.run", Msg: "not initialised"}
	}

	w := uartio.New(16)
	stop, err := w.Register(ctx, uartio.ReaderCfg{
		DevID:     devID,
		Port:      s.port,
		Mode:      s.params.Mode,
		MaxFrame:  s.params.MaxFrame,
		IdleFlush: s.params.IdleFlush,
		Baud:      s.params.Baud,
	})
	if err != nil {
		return err
	}
	defer stop()

	hb := time.NewTicker(s.params.Heartbeat)
	defer hb.Stop()
	drain := time.NewTicker(mathx.Max(timex.FrameTime(s.params.Baud, 10, 1), 50*time.Microsecond))
	defer drain.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info:", "console stopping")
			s.leds.Off()
			return nil
		case ev := <-w.Events():
			s.handle(w, ev)
		case <-drain.C:
			s.drainTX()
		case <-hb.C:
			s.heartbeat()
		}
	}
}

func (s *Service) handle(w *uartio.Worker, ev uartio.Event) {
	if ev.Dir == "tx" {
		s.mu.Lock()
		s.stats.TXFrames++
		s.mu.Unlock()
		return
	}

	s.rxSeen = true
	s.leds.Orange().On()
	s.blue = !s.blue
	s.leds.Blue().Set(s.blue)

	out := ev.Data
	if s.params.Mode == "lines" {
		out = make([]byte, 0, len(s.params.EchoPrefix)+len(ev.Data)+2)
		out = append(out, s.params.EchoPrefix...)
		out = append(out, ev.Data...)
		out = append(out, '\r', '\n')
	}

	room := cap(s.tx) - len(s.tx)
	n := mathx.Min(room, len(out))
	s.tx = append(s.tx, out[:n]...)
	if n > 0 {
		w.EmitTX(devID, out[:n], s.params.MaxFrame)
	}

	s.mu.Lock()
	s.stats.RXBytes += uint32(len(ev.Data))
	if s.params.Mode == "lines" {
		s.stats.Lines++
	}
	s.stats.TXDrops += uint32(len(out) - n)
	s.mu.Unlock()

	if n < len(out) && !s.red {
		println("Warn:", "console tx backlog full, dropped", len(out)-n, "bytes")
		s.red = true
		s.leds.Red().On()
	}
}

// drainTX moves backlog bytes into the transmitter until it reports busy.
func (s *Service) drainTX() {
	sent := 0
	for sent < len(s.tx) {
		s.port.mu.Lock()
		err := s.ch.WriteByte(s.tx[sent])
		s.port.mu.Unlock()
		if errors.Is(err, errcode.NotReady) {
			break
		}
		sent++
	}
	if sent == 0 {
		return
	}
	s.tx = s.tx[:copy(s.tx, s.tx[sent:])]

	s.mu.Lock()
	s.stats.TXBytes += uint32(sent)
	s.mu.Unlock()

	if len(s.tx) == 0 && s.red {
		s.red = false
		s.leds.Red().Off()
	}
}

func (s *Service) heartbeat() {
	s.green = !s.green
	s.leds.Green().Set(s.green)
	s.leds.Orange().Set(s.rxSeen)
	s.rxSeen = false
}
