package serial

import (
	"strconv"

	"discobsp/device/stm32f4"
	"discobsp/errcode"
	"discobsp/x/mathx"
)

// Divisor is the USART baud-rate divisor in 1/16ths of the peripheral
// clock: 12 bits of mantissa and 4 bits of fraction (16x oversampling).
type Divisor uint16

// ComputeDivisor returns round(clockHz/baud), rounding halves up. It fails
// with BaudUnsupported when baud is zero or the result does not fit BRR.
func ComputeDivisor(clockHz, baud uint32) (Divisor, error) {
	if baud == 0 {
		return 0, unsupported(baud, "zero baud")
	}
	d := mathx.RoundDiv(uint64(clockHz), uint64(baud))
	switch {
	case d == 0:
		return 0, unsupported(baud, "above clock/2")
	case d > 0xFFFF:
		return 0, unsupported(baud, "divisor overflows BRR")
	}
	return Divisor(d), nil
}

func unsupported(baud uint32, why string) error {
	return &errcode.E{
		C:   errcode.BaudUnsupported,
		Op:  "serial.init",
		Msg: strconv.FormatUint(uint64(baud), 10) + ": " + why,
	}
}

func (d Divisor) Value() uint16 { return uint16(d) }

func (d Divisor) Mantissa() uint32 {
	return uint32(d)>>4&stm32f4.USART_BRR_MANTISSA_Msk
}

func (d Divisor) Fraction() uint32 {
	return uint32(d) & stm32f4.USART_BRR_FRACTION_Msk
}

// BRR returns the register encoding.
func (d Divisor) BRR() uint32 {
	return d.Mantissa()<<stm32f4.USART_BRR_MANTISSA_Pos | d.Fraction()<<stm32f4.USART_BRR_FRACTION_Pos
}

// Baud returns the rate the divisor actually produces at clockHz.
func (d Divisor) Baud(clockHz uint32) uint32 {
	if d == 0 {
		return 0
	}
	return uint32(mathx.RoundDiv(uint64(clockHz), uint64(d)))
}
