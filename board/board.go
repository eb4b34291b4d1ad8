// Package board describes the STM32F4DISCOVERY wiring and clocks.
package board

import "discobsp/device/stm32f4"

const Name = "stm32f4disco"

// PeripheralClockHz is the APB1 clock feeding USART2. It must match the
// clock tree set up by the runtime (168 MHz SYSCLK, APB1 prescaler 4).
const PeripheralClockHz uint32 = 42_000_000

// Serial channel wiring: USART2 on PA2 (TX) / PA3 (RX).
const (
	UARTTxPin   uint8 = 2
	UARTRxPin   uint8 = 3
	UARTAltFunc       = stm32f4.AF7_USART1_2_3
)

// User LEDs on GPIOD.
const (
	LEDGreen  uint8 = 12 // LD4
	LEDOrange uint8 = 13 // LD3
	LEDRed    uint8 = 14 // LD5
	LEDBlue   uint8 = 15 // LD6
)

// LEDPins lists the indicator pins in logical line order 0..3.
var LEDPins = [4]uint8{LEDGreen, LEDOrange, LEDRed, LEDBlue}
