// Command bsp-sim runs the serial console against a simulated register file.
//
// Bytes read from stdin are received on USART2; bytes the console transmits
// are written to stdout. With -regfile the register file is a memory-mapped
// file another process can watch (LED state lives in the GPIOD ODR word).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"discobsp/device/stm32f4"
	"discobsp/services/console"
	"discobsp/sim"
)

var (
	msg = log.New(os.Stderr, "bsp-sim: ", 0)
)

func main() {
	def := console.DefaultParams()
	var (
		baud    = flag.Uint("baud", uint(def.Baud), "serial baud rate")
		mode    = flag.String("mode", def.Mode, "receive mode (lines|bytes)")
		prefix  = flag.String("prefix", "", "prefix for echoed lines")
		regfile = flag.String("regfile", "", "path to a memory-mapped register file (default: in memory)")
		dur     = flag.Duration("dur", 0, "stop after this long (default: at end of input)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: bsp-sim [OPTIONS]

ex:
 $> echo hello | bsp-sim -baud=9600
 $> bsp-sim -regfile=/tmp/disco.regs -dur=1m

options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	p := def
	p.Baud = uint32(*baud)
	p.Mode = *mode
	p.EchoPrefix = *prefix

	err := run(p, *regfile, *dur)
	if err != nil {
		msg.Fatalf("%+v", err)
	}
}

func run(p console.Params, regfile string, dur time.Duration) error {
	r := sim.New()
	if regfile != "" {
		f, err := sim.Open(regfile)
		if err != nil {
			return fmt.Errorf("could not open register file %q: %w", regfile, err)
		}
		defer f.Close()
		r = f
	}

	svc := console.New(stm32f4.New(r), p)
	if err := svc.Init(); err != nil {
		return fmt.Errorf("could not initialise console: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if dur > 0 {
		ctx, cancel = context.WithTimeout(ctx, dur)
		defer cancel()
	}

	// Reads from stdin cannot be interrupted: keep them out of the group.
	input := make(chan []byte)
	go func() {
		defer close(input)
		buf := make([]byte, 256)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				input <- append([]byte(nil), buf[:n]...)
			}
			if err != nil {
				if err != io.EOF {
					msg.Printf("could not read stdin: %+v", err)
				}
				return
			}
		}
	}()

	grp, ctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	grp.Go(func() error {
		return svc.Run(runCtx)
	})

	grp.Go(func() error {
		for {
			select {
			case <-runCtx.Done():
				return nil
			case data, ok := <-input:
				if !ok {
					if dur == 0 {
						// Let the console echo what it has.
						time.Sleep(250 * time.Millisecond)
						stop()
					}
					return nil
				}
				r.Inject(data...)
			}
		}
	})

	grp.Go(func() error {
		tick := time.NewTicker(5 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-runCtx.Done():
				_, err := os.Stdout.Write(r.TakeTransmitted())
				return err
			case <-tick.C:
				if out := r.TakeTransmitted(); len(out) > 0 {
					if _, err := os.Stdout.Write(out); err != nil {
						return fmt.Errorf("could not write output: %w", err)
					}
				}
			}
		}
	})

	err := grp.Wait()
	st := svc.Stats()
	msg.Printf("rx=%d lines=%d tx=%d drops=%d", st.RXBytes, st.Lines, st.TXBytes, st.TXDrops)
	return err
}
