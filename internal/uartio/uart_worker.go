// internal/uartio/uart_worker.go
package uartio

import (
	"context"
	"time"

	"tinygo.org/x/drivers"

	"discobsp/errcode"
	"discobsp/x/mathx"
	"discobsp/x/timex"
)

type Event struct {
	DevID string
	Dir   string // "rx" | "tx"
	Data  []byte
	TSms  int64
}

type ReaderCfg struct {
	DevID     string
	Port      drivers.UART
	Mode      string        // "bytes" | "lines"
	MaxFrame  int           // clamp 16..256
	IdleFlush time.Duration // clamp 0..2s (lines mode)
	Baud      uint32        // used to derive Poll when Poll is zero
	Poll      time.Duration // clamp 50us..100ms
}

const (
	minPoll     = 50 * time.Microsecond
	maxPoll     = 100 * time.Millisecond
	defaultPoll = time.Millisecond
)

// normalise returns cfg with every limit applied.
func (cfg ReaderCfg) normalise() ReaderCfg {
	cfg.MaxFrame = mathx.Clamp(cfg.MaxFrame, 16, 256)
	cfg.IdleFlush = mathx.Clamp(cfg.IdleFlush, 0, 2*time.Second)
	if cfg.Mode != "lines" {
		cfg.Mode = "bytes"
	}
	if cfg.Poll == 0 {
		cfg.Poll = defaultPoll
		if cfg.Baud > 0 {
			// One 10-bit frame: the receiver holds a single byte.
			cfg.Poll = timex.FrameTime(cfg.Baud, 10, 1)
		}
	}
	cfg.Poll = mathx.Clamp(cfg.Poll, minPoll, maxPoll)
	return cfg
}

var errNoPort = &errcode.E{C: errcode.InvalidParams, Op: "uartio.register", Msg: "nil port"}

type Worker struct {
	outQ chan Event
}

func New(outBuf int) *Worker {
	if outBuf <= 0 {
		outBuf = 64
	}
	return &Worker{outQ: make(chan Event, outBuf)}
}

func (w *Worker) Events() <-chan Event { return w.outQ }

// Register starts a polling reader goroutine for a UART port. Returns cancel.
func (w *Worker) Register(ctx context.Context, cfg ReaderCfg) (func(), error) {
	if cfg.Port == nil {
		return nil, errNoPort
	}
	cfg = cfg.normalise()
	cctx, cancel := context.WithCancel(ctx)

	go w.run(cctx, cfg)
	return cancel, nil
}

func (w *Worker) run(ctx context.Context, cfg ReaderCfg) {
	buf := make([]byte, cfg.MaxFrame)
	var line []byte
	var lastRX time.Time

	flush := func() {
		if len(line) == 0 {
			return
		}
		payload := append([]byte(nil), line...)
		line = line[:0]
		w.publish(Event{DevID: cfg.DevID, Dir: "rx", Data: payload, TSms: timex.NowMs()})
	}

	tick := time.NewTicker(cfg.Poll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			n := 0
			for cfg.Port.Buffered() > 0 && n < len(buf) {
				m, err := cfg.Port.Read(buf[n:])
				if err != nil || m == 0 {
					break
				}
				n += m
			}
			if n == 0 {
				if cfg.Mode == "lines" && cfg.IdleFlush > 0 && len(line) > 0 && now.Sub(lastRX) >= cfg.IdleFlush {
					flush()
				}
				continue
			}
			lastRX = now

			if cfg.Mode != "lines" {
				// Raw chunk, binary-safe.
				payload := append([]byte(nil), buf[:n]...)
				w.publish(Event{DevID: cfg.DevID, Dir: "rx", Data: payload, TSms: timex.NowMs()})
				continue
			}
			// Split on LF; CR is ignored; overlong lines are truncated.
			for _, b := range buf[:n] {
				switch b {
				case '\n':
					flush()
				case '\r':
				default:
					if len(line) < cfg.MaxFrame {
						line = append(line, b)
					}
				}
			}
		}
	}
}

// publish drops the event if the consumer is slow.
func (w *Worker) publish(ev Event) {
	select {
	case w.outQ <- ev:
	default:
	}
}

// EmitTX publishes TX echo events, at most maxFrame bytes each.
func (w *Worker) EmitTX(devID string, data []byte, maxFrame int) {
	maxFrame = mathx.Clamp(maxFrame, 16, 256)
	for len(data) > 0 {
		n := mathx.Min(len(data), maxFrame)
		p := append([]byte(nil), data[:n]...)
		w.publish(Event{DevID: devID, Dir: "tx", Data: p, TSms: timex.NowMs()})
		data = data[n:]
	}
}
