//go:build tinygo && stm32f4disco

// Command disco-console runs the serial echo console on the STM32F4DISCOVERY.
package main

import (
	"context"
	"time"

	"discobsp/board"
	"discobsp/device/stm32f4"
	"discobsp/regs"
	"discobsp/services/console"
)

func main() {
	time.Sleep(500 * time.Millisecond)
	println("[main] bootstrapping", board.Name, "…")

	svc := console.New(stm32f4.New(regs.MMIO{}), console.DefaultParams())
	if err := svc.Init(); err != nil {
		// Nothing to retry: a bad baud rate is a build defect.
		for {
			println("[main] console init failed:", err.Error())
			time.Sleep(5 * time.Second)
		}
	}

	if err := svc.Run(context.Background()); err != nil {
		println("[main] console exited:", err.Error())
	}
	select {}
}
