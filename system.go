// Package chip8 implements a CHIP-8 instruction core. The core is
// single-threaded: it executes one instruction per Step call and performs
// all I/O (timers, keyboard, randomness) through the Callbacks table it
// was constructed with.
package chip8

import "io"

type System struct {
	cpu CPU
	mem Memory
	gfx Graphics

	cb          Callbacks
	clipSprites bool
	schip       bool
}

// New builds a core with the given program image loaded at StartAddress.
// clipSprites selects sprite clipping at the screen edges over wrapping;
// schip selects the S-CHIP shift and load/store semantics.
func New(program []byte, cb Callbacks, clipSprites, schip bool) (*System, error) {
	if err := cb.validate(); err != nil {
		return nil, err
	}

	sys := &System{
		cb:          cb,
		clipSprites: clipSprites,
		schip:       schip,
	}
	sys.cpu.reset()
	sys.mem.clear()
	sys.gfx.clear()

	if err := sys.mem.loadROM(program); err != nil {
		return nil, err
	}
	return sys, nil
}

// Step executes a single instruction. It may block inside the WaitForKey
// callback.
func (sys *System) Step() {
	sys.cpu.Cycle(&sys.mem, &sys.gfx, sys)
}

func (sys *System) Print(w io.Writer) {
	sys.cpu.Print(w)
}

// Framebuffer exposes the packed monochrome pixel buffer. The caller is
// responsible for not stepping the core while reading it.
func (sys *System) Framebuffer() []uint8 {
	return sys.gfx.buffer[:]
}

func (sys *System) GetPixel(x, y uint8) uint8 {
	return sys.gfx.getPixel(x, y)
}

func (sys *System) IsDirty() bool {
	return sys.gfx.isDirty()
}

func (sys *System) SetDirty(dirty bool) {
	sys.gfx.setDirty(dirty)
}
