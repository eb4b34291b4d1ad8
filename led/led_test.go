package led

import (
	"errors"
	"testing"

	"discobsp/board"
	"discobsp/device/stm32f4"
	"discobsp/errcode"
	"discobsp/sim"
)

const bsrr = stm32f4.GPIODBase + stm32f4.GPIO_BSRR

func setup(t *testing.T) (*sim.RegisterFile, *Set) {
	t.Helper()
	r := sim.New()
	p := stm32f4.New(r)
	s := Init(p.GPIOD, p.RCC)
	r.ResetAccesses()
	return r, s
}

func TestInit(t *testing.T) {
	r := sim.New()
	p := stm32f4.New(r)
	p.GPIOD.MODER.Set(0x0000_00FF) // unrelated pins must survive

	Init(p.GPIOD, p.RCC)

	if got := r.Peek(stm32f4.RCCBase + stm32f4.RCC_AHB1ENR); got&stm32f4.RCC_AHB1ENR_GPIODEN == 0 {
		t.Fatalf("GPIOD clock not enabled: AHB1ENR=0x%x", got)
	}
	if got, want := p.GPIOD.MODER.Get(), uint32(0x5500_00FF); got != want {
		t.Fatalf("invalid MODER: got=0x%08x, want=0x%08x", got, want)
	}
	if got := p.GPIOD.OTYPER.Get(); got&0xF000 != 0 {
		t.Fatalf("LED pins not push-pull: OTYPER=0x%x", got)
	}
	if got := r.Stores(bsrr); len(got) != 0 {
		t.Fatalf("Init must not drive the lines: %v", got)
	}
}

func TestOnOffSingleStore(t *testing.T) {
	r, s := setup(t)

	for i, pin := range board.LEDPins {
		l, err := s.Line(i)
		if err != nil {
			t.Fatalf("line %d: %+v", i, err)
		}
		if l.Pin() != pin {
			t.Fatalf("line %d: pin=%d, want %d", i, l.Pin(), pin)
		}

		r.ResetAccesses()
		l.On()
		acc := r.Accesses()
		if len(acc) != 1 || acc[0].Op != sim.OpStore || acc[0].Addr != bsrr || acc[0].Value != 1<<pin {
			t.Fatalf("line %d on: invalid accesses %+v", i, acc)
		}

		r.ResetAccesses()
		l.Off()
		acc = r.Accesses()
		if len(acc) != 1 || acc[0].Op != sim.OpStore || acc[0].Addr != bsrr || acc[0].Value != 1<<(pin+16) {
			t.Fatalf("line %d off: invalid accesses %+v", i, acc)
		}
	}
}

func TestLinesAreIndependent(t *testing.T) {
	r, s := setup(t)

	s.Green().On()
	s.Blue().On()
	s.Red().On()
	s.Red().Off()
	s.Orange().Set(false)

	if got, want := r.ODR(stm32f4.GPIODBase), uint32(1<<12|1<<15); got != want {
		t.Fatalf("invalid ODR: got=0x%x, want=0x%x", got, want)
	}

	s.Off()
	if got := r.ODR(stm32f4.GPIODBase); got != 0 {
		t.Fatalf("Off left lines on: ODR=0x%x", got)
	}
	if n := len(r.Stores(bsrr)); n != 9 {
		t.Fatalf("expected 9 BSRR stores, got %d", n)
	}
	for _, a := range r.Accesses() {
		if a.Op == sim.OpLoad && a.Addr >= stm32f4.GPIODBase && a.Addr < stm32f4.GPIODBase+stm32f4.GPIOStride {
			t.Fatalf("LED switching read GPIOD at 0x%x", a.Addr)
		}
	}
}

func TestUnknownLine(t *testing.T) {
	_, s := setup(t)
	for _, i := range []int{-1, 4, 12} {
		if _, err := s.Line(i); !errors.Is(err, errcode.UnknownLine) {
			t.Fatalf("Line(%d): err=%v", i, err)
		}
	}
	if n := len(s.Lines()); n != 4 {
		t.Fatalf("Lines: got %d", n)
	}
}
