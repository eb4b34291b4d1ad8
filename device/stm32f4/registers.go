// Package stm32f4 provides base addresses, register offsets and bitfields for
// the STM32F40x RCC, GPIO and USART blocks, and typed views over a regs.Bus.
// Names follow the reference manual (RM0090).
package stm32f4

const (
	// Peripheral address space covered by the board (APB1 .. AHB1).
	PeriphBase = 0x4000_0000
	PeriphSize = 0x0004_0000

	USART2Base = 0x4000_4400
	GPIOABase  = 0x4002_0000
	GPIODBase  = 0x4002_0C00
	RCCBase    = 0x4002_3800

	// GPIO ports are 0x400 apart starting at GPIOA.
	GPIOStride = 0x400
)

// RCC
const (
	RCC_AHB1ENR = 0x30
	RCC_APB1ENR = 0x40

	RCC_AHB1ENR_GPIOAEN  = 1 << 0
	RCC_AHB1ENR_GPIODEN  = 1 << 3
	RCC_APB1ENR_USART2EN = 1 << 17
)

// GPIO
const (
	GPIO_MODER   = 0x00
	GPIO_OTYPER  = 0x04
	GPIO_OSPEEDR = 0x08
	GPIO_PUPDR   = 0x0C
	GPIO_IDR     = 0x10
	GPIO_ODR     = 0x14
	GPIO_BSRR    = 0x18
	GPIO_LCKR    = 0x1C
	GPIO_AFRL    = 0x20
	GPIO_AFRH    = 0x24

	// MODER field values (2 bits per pin).
	GPIO_MODE_INPUT     = 0b00
	GPIO_MODE_OUTPUT    = 0b01
	GPIO_MODE_ALTERNATE = 0b10
	GPIO_MODE_ANALOG    = 0b11

	GPIO_OTYPE_PUSHPULL  = 0
	GPIO_OTYPE_OPENDRAIN = 1

	// BSRR: bit n sets pin n, bit n+16 resets it.
	GPIO_BSRR_RESET_SHIFT = 16

	AF7_USART1_2_3 = 7
)

// USART
const (
	USART_SR   = 0x00
	USART_DR   = 0x04
	USART_BRR  = 0x08
	USART_CR1  = 0x0C
	USART_CR2  = 0x10
	USART_CR3  = 0x14
	USART_GTPR = 0x18

	USART_SR_PE   = 1 << 0
	USART_SR_FE   = 1 << 1
	USART_SR_NF   = 1 << 2
	USART_SR_ORE  = 1 << 3
	USART_SR_IDLE = 1 << 4
	USART_SR_RXNE = 1 << 5
	USART_SR_TC   = 1 << 6
	USART_SR_TXE  = 1 << 7

	// DR holds 9 bits; 8-bit frames use the low byte.
	USART_DR_MASK = 0x1FF

	USART_BRR_FRACTION_Pos  = 0
	USART_BRR_FRACTION_Msk  = 0xF
	USART_BRR_MANTISSA_Pos  = 4
	USART_BRR_MANTISSA_Msk  = 0xFFF
	USART_BRR_MANTISSA_Bits = 12

	USART_CR1_SBK    = 1 << 0
	USART_CR1_RWU    = 1 << 1
	USART_CR1_RE     = 1 << 2
	USART_CR1_TE     = 1 << 3
	USART_CR1_IDLEIE = 1 << 4
	USART_CR1_RXNEIE = 1 << 5
	USART_CR1_TCIE   = 1 << 6
	USART_CR1_TXEIE  = 1 << 7
	USART_CR1_PEIE   = 1 << 8
	USART_CR1_PS     = 1 << 9
	USART_CR1_PCE    = 1 << 10
	USART_CR1_WAKE   = 1 << 11
	USART_CR1_M      = 1 << 12
	USART_CR1_UE     = 1 << 13
	USART_CR1_OVER8  = 1 << 15

	USART_CR2_STOP_Pos = 12
	USART_CR2_STOP_Msk = 0x3
	USART_CR2_STOP_1   = 0b00

	USART_CR3_RTSE = 1 << 8
	USART_CR3_CTSE = 1 << 9

	// Reset values.
	USART_SR_RESET = USART_SR_TXE | USART_SR_TC
)
