// Package serial is the polled USART2 driver: 8 data bits, no parity,
// 1 stop bit, no flow control.
//
// ReadByte and WriteByte never block. Each samples the status register once
// and, when ready, touches the data register once; otherwise it returns
// errcode.NotReady. The channel is not locked internally. Callers that share
// it between contexts must serialise access themselves.
package serial

import (
	"discobsp/board"
	"discobsp/device/stm32f4"
	"discobsp/errcode"
)

const (
	cr1Enable = stm32f4.USART_CR1_UE | stm32f4.USART_CR1_TE |
		stm32f4.USART_CR1_RE | stm32f4.USART_CR1_RXNEIE
)

// Channel is the board's serial channel.
type Channel struct {
	usart   *stm32f4.USART
	clockHz uint32
	div     Divisor
}

// New binds a channel to the USART block. Init must run before any transfer.
func New(usart *stm32f4.USART) *Channel {
	return &Channel{usart: usart, clockHz: board.PeripheralClockHz}
}

// Init powers and configures the channel for baud. An unsupported baud rate
// is rejected before any register is written.
func (c *Channel) Init(gpio *stm32f4.GPIO, rcc *stm32f4.RCC, baud uint32) error {
	div, err := ComputeDivisor(c.clockHz, baud)
	if err != nil {
		return err
	}

	rcc.APB1ENR.SetBits(stm32f4.RCC_APB1ENR_USART2EN)
	rcc.AHB1ENR.SetBits(gpio.ClockEnable)

	for _, pin := range [...]uint8{board.UARTTxPin, board.UARTRxPin} {
		gpio.SetAltFunc(pin, board.UARTAltFunc)
		gpio.SetMode(pin, stm32f4.GPIO_MODE_ALTERNATE)
	}

	c.usart.CR2.ReplaceBits(stm32f4.USART_CR2_STOP_1, stm32f4.USART_CR2_STOP_Msk, stm32f4.USART_CR2_STOP_Pos)
	c.usart.CR3.ClearBits(stm32f4.USART_CR3_RTSE | stm32f4.USART_CR3_CTSE)
	c.usart.BRR.Set(div.BRR())

	// M, PCE and OVER8 stay 0.
	c.usart.CR1.Set(cr1Enable)

	c.div = div
	return nil
}

// MustInit is Init for firmware where the baud rate is a constant.
func (c *Channel) MustInit(gpio *stm32f4.GPIO, rcc *stm32f4.RCC, baud uint32) {
	if err := c.Init(gpio, rcc, baud); err != nil {
		panic(err)
	}
}

// Divisor returns the divisor programmed by the last successful Init.
func (c *Channel) Divisor() Divisor { return c.div }

// Baud returns the rate actually produced by the programmed divisor.
func (c *Channel) Baud() uint32 { return c.div.Baud(c.clockHz) }

// ReadByte implements io.ByteReader.
func (c *Channel) ReadByte() (byte, error) {
	if c.usart.SR.Get()&stm32f4.USART_SR_RXNE == 0 {
		return 0, errcode.NotReady
	}
	return byte(c.usart.DR.Get()), nil
}

// WriteByte implements io.ByteWriter.
func (c *Channel) WriteByte(b byte) error {
	if c.usart.SR.Get()&stm32f4.USART_SR_TXE == 0 {
		return errcode.NotReady
	}
	c.usart.DR.Set(uint32(b))
	return nil
}

// Readable reports whether a received byte is waiting.
func (c *Channel) Readable() bool { return c.usart.SR.HasBits(stm32f4.USART_SR_RXNE) }

// Writable reports whether the transmit data register is empty.
func (c *Channel) Writable() bool { return c.usart.SR.HasBits(stm32f4.USART_SR_TXE) }
