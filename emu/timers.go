package emu

import (
	"sync/atomic"
	"time"
)

// tickInterval is the decay rate shared by both timers, 60 Hz.
const tickInterval = 16_666_667 * time.Nanosecond

// counter is a 60 Hz decay value. It is decremented and clamped in two
// separate atomic steps, so a reader racing the clamp can observe a
// transient -1; Get coerces that back to 0, which is why the value is
// held as a signed word.
type counter struct {
	value atomic.Int32
}

// Get returns the current value coerced into 0..255. Lock-free, callable
// from any goroutine.
func (c *counter) Get() uint8 {
	v := c.value.Load()
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Set assigns a fresh value. Lock-free, callable from any goroutine.
func (c *counter) Set(v uint8) {
	c.value.Store(int32(v))
}

// tick decrements and clamps, returning the post-decrement pre-clamp
// value.
func (c *counter) tick() int32 {
	v := c.value.Add(-1)
	if v < 0 {
		c.value.CompareAndSwap(v, 0)
	}
	return v
}

// DelayTimer is the general-purpose decay counter read and written by
// ROM code through FX07/FX15.
type DelayTimer struct {
	counter
}

func NewDelayTimer() *DelayTimer {
	return &DelayTimer{}
}

// Run drives the 60 Hz decay loop. It never returns; run it on its own
// goroutine.
func (t *DelayTimer) Run() {
	for {
		t.tick()
		preciseSleep(tickInterval)
	}
}

// Beeper is the audio gate driven by the sound timer.
type Beeper interface {
	Resume()
	Pause()
}

// SilentBeeper discards all audio gating.
type SilentBeeper struct{}

func (SilentBeeper) Resume() {}
func (SilentBeeper) Pause()  {}

// SoundTimer decays like DelayTimer and additionally keeps the beeper
// playing while the counter is still running past the current tick.
type SoundTimer struct {
	counter
	beeper Beeper
}

func NewSoundTimer(beeper Beeper) *SoundTimer {
	if beeper == nil {
		beeper = SilentBeeper{}
	}
	return &SoundTimer{beeper: beeper}
}

// Run drives the 60 Hz decay loop. It never returns; run it on its own
// goroutine.
func (t *SoundTimer) Run() {
	for {
		t.step()
		preciseSleep(tickInterval)
	}
}

func (t *SoundTimer) step() {
	// the beeper stays on while the post-decrement value is positive
	if rem := t.tick(); rem > 0 {
		t.beeper.Resume()
	} else {
		t.beeper.Pause()
	}
}
