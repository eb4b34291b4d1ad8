// Package led drives the four user LEDs of the board.
//
// On and Off are single stores to the port's BSRR, so lines can be switched
// from different contexts (main loop, interrupt handler) without a
// read-modify-write race.
package led

import (
	"discobsp/board"
	"discobsp/device/stm32f4"
	"discobsp/errcode"
)

// Line is one indicator output.
type Line struct {
	port *stm32f4.GPIO
	pin  uint8
}

// On drives the line high.
func (l Line) On() { l.port.BSRR.Set(1 << l.pin) }

// Off drives the line low.
func (l Line) Off() { l.port.BSRR.Set(1 << (l.pin + stm32f4.GPIO_BSRR_RESET_SHIFT)) }

// Set switches the line on or off.
func (l Line) Set(on bool) {
	if on {
		l.On()
	} else {
		l.Off()
	}
}

// Pin returns the physical pin number on the port.
func (l Line) Pin() uint8 { return l.pin }

// Set is the group of indicator lines.
type Set struct {
	lines [len(board.LEDPins)]Line
}

// Init powers the GPIO port and configures the LED pins as push-pull
// outputs. Call it once before using the returned set.
func Init(gpio *stm32f4.GPIO, rcc *stm32f4.RCC) *Set {
	rcc.AHB1ENR.SetBits(gpio.ClockEnable)

	s := &Set{}
	for i, pin := range board.LEDPins {
		gpio.SetOutputType(pin, stm32f4.GPIO_OTYPE_PUSHPULL)
		gpio.SetMode(pin, stm32f4.GPIO_MODE_OUTPUT)
		s.lines[i] = Line{port: gpio, pin: pin}
	}
	return s
}

// Line returns the line at logical index i (0..3).
func (s *Set) Line(i int) (Line, error) {
	if i < 0 || i >= len(s.lines) {
		return Line{}, errcode.UnknownLine
	}
	return s.lines[i], nil
}

// Lines returns all lines in logical order.
func (s *Set) Lines() []Line { return s.lines[:] }

func (s *Set) Green() Line  { return s.lines[0] }
func (s *Set) Orange() Line { return s.lines[1] }
func (s *Set) Red() Line    { return s.lines[2] }
func (s *Set) Blue() Line   { return s.lines[3] }

// Off switches every line off, one store per line.
func (s *Set) Off() {
	for _, l := range s.lines {
		l.Off()
	}
}
