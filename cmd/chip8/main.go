// Command chip8 runs CHIP-8 programs in a GLFW window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/ariotta/chip8/emu"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	log.SetPrefix("chip8: ")
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
			// continue without sound
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

	var fe Frontend
	if err := fe.Initialize(e); err != nil {
		log.Fatal(err)
	}
	defer fe.Terminate()
	fe.Loop(e)
}
