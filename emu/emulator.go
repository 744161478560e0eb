// Package emu paces a CHIP-8 instruction core against a fixed-rate
// presentation loop. Five long-lived goroutines cooperate for the process
// lifetime: the presentation thread (host-driven, calls Tick and
// Snapshot), the CPU worker, the keyboard event loop, and one decay loop
// per timer. None of them are ever joined; process exit tears them down.
//
// Every shared structure has exactly one guarding lock or atomic and no
// lock is ever held together with another, which is what keeps five
// threads coordinating through three condition variables deadlock-free.
package emu

import (
	"math/rand"
	"sync"

	"github.com/ariotta/chip8"
)

// Options configures an Emulator at startup. The clock speed is fixed for
// the process lifetime; there is no runtime speed change.
type Options struct {
	ClockSpeed  uint // emulated clock in Hz; 0 means DefaultClockSpeed
	ClipSprites bool
	SCHIP       bool
	Program     []byte
	Beeper      Beeper // nil disables audio
}

type Emulator struct {
	core   *chip8.System
	coreMu sync.Mutex // held by the worker for the whole of one instruction

	rdv   *rendezvous
	pacer *pacer
	keys  *Keyboard
	delay *DelayTimer
	sound *SoundTimer

	// press-hold edge detection for the input handlers; touched only by
	// the goroutine feeding KeyDown/KeyUp
	keyHeld [NumKeys]bool
}

// New wires the components together and spawns the background loops. The
// callbacks handed to the core close over the sibling components, so the
// core can be constructed last with no two-phase initialization.
func New(opts Options) (*Emulator, error) {
	if opts.ClockSpeed == 0 {
		opts.ClockSpeed = DefaultClockSpeed
	}

	e := &Emulator{
		rdv:   newRendezvous(),
		keys:  NewKeyboard(),
		delay: NewDelayTimer(),
		sound: NewSoundTimer(opts.Beeper),
	}
	go e.delay.Run()
	go e.sound.Run()

	cb := chip8.Callbacks{
		SoundSetter: e.sound.Set,
		TimeSetter:  e.delay.Set,
		TimeGetter:  e.delay.Get,
		IsPressed:   e.keys.IsPressed,
		WaitForKey:  e.waitForKey,
		Rand:        func() uint8 { return uint8(rand.Intn(256)) },
	}

	core, err := chip8.New(opts.Program, cb, opts.ClipSprites, opts.SCHIP)
	if err != nil {
		return nil, err
	}
	e.core = core
	e.pacer = newPacer(NewSpeedParams(opts.ClockSpeed), e.rdv)

	go e.runWorker()
	return e, nil
}

// waitForKey implements the FX0A callback. It runs on the CPU worker
// goroutine: the rendezvous transition must be performed by the worker
// itself, immediately before the blocking wait, never by a third party.
func (e *Emulator) waitForKey() uint8 {
	e.rdv.enterKeyWait()
	return e.keys.WaitKey()
}

// runWorker is the CPU worker loop: wait for a request, execute exactly
// one instruction, report back. Step can block indefinitely inside
// wait-for-key, which is why the feedback transition happens only after
// it has returned.
func (e *Emulator) runWorker() {
	for {
		e.rdv.awaitRequest()

		e.coreMu.Lock()
		e.core.Step()
		e.coreMu.Unlock()

		e.rdv.finish()
	}
}

// Tick runs one pacing tick. Call it once per presentation frame, always
// from the same goroutine. Every wait it performs is bounded by the
// worker completing a single instruction, so the presentation loop is
// never stalled for unbounded time.
func (e *Emulator) Tick() {
	e.pacer.tick()
}

// Params exposes the derived pacing parameters.
func (e *Emulator) Params() SpeedParams {
	return e.pacer.params
}

// KeyDown records a key press edge. Repeated calls while the key is held
// are dropped, so callers may forward raw host key-repeat events. Call
// KeyDown and KeyUp from a single goroutine.
func (e *Emulator) KeyDown(key uint8) {
	if key >= NumKeys || e.keyHeld[key] {
		return
	}
	e.keyHeld[key] = true
	e.keys.Push(KeyEvent{Key: key, Action: Pressed})
}

// KeyUp records a key release edge.
func (e *Emulator) KeyUp(key uint8) {
	if key >= NumKeys || !e.keyHeld[key] {
		return
	}
	e.keyHeld[key] = false
	e.keys.Push(KeyEvent{Key: key, Action: Released})
}

// Snapshot copies the framebuffer into dst if it has changed since the
// last copy. It never blocks: while the worker is parked inside
// wait-for-key it still holds the core lock, and this frame's redraw is
// simply skipped.
func (e *Emulator) Snapshot(dst *[chip8.FramebufferBytes]uint8) bool {
	if !e.coreMu.TryLock() {
		return false
	}
	defer e.coreMu.Unlock()

	if !e.core.IsDirty() {
		return false
	}
	copy(dst[:], e.core.Framebuffer())
	e.core.SetDirty(false)
	return true
}
