package stm32f4

import "discobsp/regs"

// RCC is the subset of the reset and clock control block the board uses.
type RCC struct {
	AHB1ENR regs.Reg
	APB1ENR regs.Reg
}

func NewRCC(bus regs.Bus, base uintptr) *RCC {
	return &RCC{
		AHB1ENR: regs.At(bus, base+RCC_AHB1ENR),
		APB1ENR: regs.At(bus, base+RCC_APB1ENR),
	}
}

// GPIO is one GPIO port register block.
type GPIO struct {
	MODER   regs.Reg
	OTYPER  regs.Reg
	OSPEEDR regs.Reg
	PUPDR   regs.Reg
	IDR     regs.Reg
	ODR     regs.Reg
	BSRR    regs.Reg
	LCKR    regs.Reg
	AFRL    regs.Reg
	AFRH    regs.Reg

	// ClockEnable is the port's bit in RCC AHB1ENR.
	ClockEnable uint32
}

func NewGPIO(bus regs.Bus, base uintptr) *GPIO {
	port := (base - GPIOABase) / GPIOStride
	return &GPIO{
		MODER:       regs.At(bus, base+GPIO_MODER),
		OTYPER:      regs.At(bus, base+GPIO_OTYPER),
		OSPEEDR:     regs.At(bus, base+GPIO_OSPEEDR),
		PUPDR:       regs.At(bus, base+GPIO_PUPDR),
		IDR:         regs.At(bus, base+GPIO_IDR),
		ODR:         regs.At(bus, base+GPIO_ODR),
		BSRR:        regs.At(bus, base+GPIO_BSRR),
		LCKR:        regs.At(bus, base+GPIO_LCKR),
		AFRL:        regs.At(bus, base+GPIO_AFRL),
		AFRH:        regs.At(bus, base+GPIO_AFRH),
		ClockEnable: 1 << port,
	}
}

// SetMode writes the 2-bit MODER field of pin.
func (g *GPIO) SetMode(pin uint8, mode uint32) {
	g.MODER.ReplaceBits(mode, 0x3, pin*2)
}

// SetOutputType writes the OTYPER bit of pin.
func (g *GPIO) SetOutputType(pin uint8, typ uint32) {
	g.OTYPER.ReplaceBits(typ, 0x1, pin)
}

// SetAltFunc writes the 4-bit alternate function selector of pin.
func (g *GPIO) SetAltFunc(pin uint8, af uint32) {
	if pin < 8 {
		g.AFRL.ReplaceBits(af, 0xF, pin*4)
		return
	}
	g.AFRH.ReplaceBits(af, 0xF, (pin-8)*4)
}

// USART is one USART register block.
type USART struct {
	SR   regs.Reg
	DR   regs.Reg
	BRR  regs.Reg
	CR1  regs.Reg
	CR2  regs.Reg
	CR3  regs.Reg
	GTPR regs.Reg
}

func NewUSART(bus regs.Bus, base uintptr) *USART {
	return &USART{
		SR:   regs.At(bus, base+USART_SR),
		DR:   regs.At(bus, base+USART_DR),
		BRR:  regs.At(bus, base+USART_BRR),
		CR1:  regs.At(bus, base+USART_CR1),
		CR2:  regs.At(bus, base+USART_CR2),
		CR3:  regs.At(bus, base+USART_CR3),
		GTPR: regs.At(bus, base+USART_GTPR),
	}
}

// Peripherals holds the singletons used on the STM32F4DISCOVERY board.
// Pass them explicitly to the drivers; there is no package-level instance.
type Peripherals struct {
	RCC    *RCC
	GPIOA  *GPIO
	GPIOD  *GPIO
	USART2 *USART
}

// New binds the board peripherals to bus.
func New(bus regs.Bus) Peripherals {
	return Peripherals{
		RCC:    NewRCC(bus, RCCBase),
		GPIOA:  NewGPIO(bus, GPIOABase),
		GPIOD:  NewGPIO(bus, GPIODBase),
		USART2: NewUSART(bus, USART2Base),
	}
}
