package console

import (
	"time"

	"discobsp/errcode"
)

type Params struct {
	Baud       uint32
	Mode       string        // "lines" | "bytes"
	MaxFrame   int           // worker frame size, clamp 16..256
	IdleFlush  time.Duration // partial line flush (lines mode)
	Heartbeat  time.Duration
	EchoPrefix string
	TXBacklog  int // bytes queued for transmit before echoes are dropped
}

func DefaultParams() Params {
	return Params{
		Baud:      115200,
		Mode:      "lines",
		MaxFrame:  64,
		IdleFlush: 100 * time.Millisecond,
		Heartbeat: time.Second,
		TXBacklog: 256,
	}
}

// normalise fills zero values from the defaults. Baud is left alone so the
// serial channel can reject it.
func (p Params) normalise() (Params, error) {
	d := DefaultParams()
	switch p.Mode {
	case "":
		p.Mode = d.Mode
	case "lines", "bytes":
	default:
		return p, &errcode.E{C: errcode.InvalidParams, Op: "console.params", Msg: "mode " + p.Mode}
	}
	if p.MaxFrame <= 0 {
		p.MaxFrame = d.MaxFrame
	}
	if p.IdleFlush < 0 {
		p.IdleFlush = 0
	}
	if p.Heartbeat <= 0 {
		p.Heartbeat = d.Heartbeat
	}
	if p.TXBacklog <= 0 {
		p.TXBacklog = d.TXBacklog
	}
	return p, nil
}
