// Command chip8term runs CHIP-8 programs in the terminal. The keypad is
// read from raw-mode stdin; since a terminal delivers no key-up events,
// a key counts as held until no repeat has arrived for a short window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ariotta/chip8"
	"github.com/ariotta/chip8/emu"
)

func main() {
	log.SetPrefix("chip8term: ")
	log.SetFlags(0)

	var (
		clockFlag = flag.Uint("clock", emu.DefaultClockSpeed, "emulated clock speed in Hz")
		clipFlag  = flag.Bool("clip", true, "clip sprites at the screen edges instead of wrapping")
		schipFlag = flag.Bool("schip", false, "use S-CHIP shift and load/store semantics")
		muteFlag  = flag.Bool("mute", false, "disable the beeper")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] program.ch8\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *clockFlag == 0 {
		log.Fatal("clock speed must be positive")
	}

	program, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	var beeper emu.Beeper
	if !*muteFlag {
		b, err := emu.NewBeeper()
		if err != nil {
			log.Printf("%v", err)
		} else {
			beeper = b
		}
	}

	e, err := emu.New(emu.Options{
		ClockSpeed:  *clockFlag,
		ClipSprites: *clipFlag,
		SCHIP:       *schipFlag,
		Program:     program,
		Beeper:      beeper,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := run(e); err != nil {
		log.Fatal(err)
	}
}

func run(e *emu.Emulator) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("cannot put terminal in raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	quit := make(chan struct{})
	go readInput(e, quit)

	screen := newScreen()
	var fb [chip8.FramebufferBytes]uint8
	for {
		select {
		case <-quit:
			return nil
		default:
		}

		e.Tick()
		if e.Snapshot(&fb) {
			screen.draw(&fb)
		}
	}
}
