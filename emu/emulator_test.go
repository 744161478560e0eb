package emu

import (
	"testing"
	"time"

	"github.com/ariotta/chip8"
)

func mustTickWithin(t *testing.T, e *Emulator, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		e.Tick()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("Tick did not return in time")
	}
}

func TestTickExecutesAndRedraws(t *testing.T) {
	// draw the font sprite for 0 at (0,0), then spin
	e, err := New(Options{
		Program: []byte{
			0x60, 0x00, // ld V0, 0
			0xF0, 0x29, // ld F, V0
			0xD0, 0x05, // drw V0, V0, 5
			0x12, 0x06, // jp 0x206
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	mustTickWithin(t, e, 2*time.Second)

	var fb [chip8.FramebufferBytes]uint8
	if !e.Snapshot(&fb) {
		t.Fatal("Snapshot found no frame after a full tick")
	}
	set := 0
	for _, b := range fb {
		if b != 0 {
			set++
		}
	}
	if set == 0 {
		t.Error("framebuffer empty after drawing a sprite")
	}

	// no second copy until the worker draws again... which it won't,
	// it is spinning on a jump
	if e.Snapshot(&fb) {
		t.Error("Snapshot reported a dirty frame twice for one draw")
	}
}

func TestWaitForKeyProtocol(t *testing.T) {
	e, err := New(Options{
		Program: []byte{
			0xF5, 0x0A, // ld V5, K
			0x12, 0x02, // jp 0x202
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	// first tick: the worker executes FX0A and parks; the batch must
	// abort instead of stalling the presentation side
	mustTickWithin(t, e, 2*time.Second)

	deadline := time.Now().Add(2 * time.Second)
	for !e.keys.waitStateIs(keyWaiting) {
		if time.Now().After(deadline) {
			t.Fatal("worker never entered the keyboard wait")
		}
		time.Sleep(time.Millisecond)
	}
	if !e.rdv.waitingForKey() {
		t.Fatal("rendezvous not flagged WaitingForKey during the key wait")
	}

	// further ticks skip without blocking, and the frame contract skips
	// the redraw because the worker still holds the core
	mustTickWithin(t, e, 2*time.Second)
	var fb [chip8.FramebufferBytes]uint8
	if e.Snapshot(&fb) {
		t.Error("Snapshot succeeded while the worker was blocked on a key")
	}

	// a press edge resolves the wait exactly once and hands control back
	e.KeyDown(0x9)
	deadline = time.Now().Add(2 * time.Second)
	for e.rdv.waitingForKey() {
		if time.Now().After(deadline) {
			t.Fatal("key press did not release the worker")
		}
		time.Sleep(time.Millisecond)
	}

	mustTickWithin(t, e, 2*time.Second)
}

func TestKeyEdgeDetection(t *testing.T) {
	e, err := New(Options{Program: []byte{0x12, 0x00}})
	if err != nil {
		t.Fatal(err)
	}

	// host key-repeat: many downs, one release
	for i := 0; i < 5; i++ {
		e.KeyDown(0xB)
	}
	e.KeyUp(0xB)
	e.keys.Close()
	<-e.keys.done

	if e.keys.IsPressed(0xB) {
		t.Error("key still pressed after its release event")
	}
}

func TestDefaultClockSpeed(t *testing.T) {
	e, err := New(Options{Program: []byte{0x12, 0x00}})
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Params(); got != NewSpeedParams(DefaultClockSpeed) {
		t.Errorf("Params() = %+v, want derivation from %d Hz", got, DefaultClockSpeed)
	}
}

func TestRejectsOversizedProgram(t *testing.T) {
	if _, err := New(Options{Program: make([]byte, 8192)}); err == nil {
		t.Error("expected an error for an oversized program")
	}
}

func (r *rendezvous) waitingForKey() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateWaitingForKey
}
