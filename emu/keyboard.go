package emu

import "sync"

// NumKeys is the size of the hexadecimal keypad.
const NumKeys = 16

type KeyAction uint8

const (
	Pressed KeyAction = iota
	Released
)

// KeyEvent is one edge-detected keypad event. Producers must not enqueue
// a second Pressed for a key without an intervening Released; a held key
// is exactly one press edge.
type KeyEvent struct {
	Key    uint8
	Action KeyAction
}

// keyWaitState is the secondary state machine behind the blocking
// wait-for-key operation. pressedWhileWaiting is only ever entered from
// waiting, and is drained back to normal by the single blocked waiter.
type keyWaitState int

const (
	keyNormal keyWaitState = iota
	keyWaiting
	keyPressedWhileWaiting
)

// armWait is an internal queue barrier event. Arming the wait travels
// through the event queue itself, so every press enqueued before the wait
// began is processed under keyNormal and cannot satisfy it.
const armWait KeyAction = 0xFF

// Keyboard tracks the pressed-key bitmap and services the blocking
// wait-for-key protocol. The bitmap and the wait machine are guarded by
// two independent locks; neither is ever held together with the other or
// with any lock outside this type.
type Keyboard struct {
	events chan KeyEvent
	done   chan struct{}

	mu      sync.Mutex // guards pressed
	pressed [NumKeys]bool

	waitMu    sync.Mutex // guards waitState and waitKey
	waitCond  *sync.Cond
	waitState keyWaitState
	waitKey   uint8
}

// NewKeyboard starts the background loop that consumes the event queue.
func NewKeyboard() *Keyboard {
	k := &Keyboard{
		events: make(chan KeyEvent, 256),
		done:   make(chan struct{}),
	}
	k.waitCond = sync.NewCond(&k.waitMu)
	go k.run()
	return k
}

// Push enqueues one event. Events are processed strictly in order.
func (k *Keyboard) Push(ev KeyEvent) {
	k.events <- ev
}

// Close shuts the event queue; the background loop drains what is queued
// and exits.
func (k *Keyboard) Close() {
	close(k.events)
}

func (k *Keyboard) run() {
	defer close(k.done)

	for ev := range k.events {
		if ev.Action == armWait {
			k.waitMu.Lock()
			k.waitState = keyWaiting
			k.waitMu.Unlock()
			k.waitCond.Broadcast()
			continue
		}
		if ev.Key >= NumKeys {
			continue
		}
		switch ev.Action {
		case Pressed:
			k.mu.Lock()
			k.pressed[ev.Key] = true
			k.mu.Unlock()

			k.waitMu.Lock()
			if k.waitState == keyWaiting {
				k.waitState = keyPressedWhileWaiting
				k.waitKey = ev.Key
			}
			k.waitMu.Unlock()
			k.waitCond.Broadcast()

		case Released:
			// releasing a key never resolves a pending wait
			k.mu.Lock()
			k.pressed[ev.Key] = false
			k.mu.Unlock()
		}
	}
}

// IsPressed reports whether a key is currently held. Safe from any
// goroutine.
func (k *Keyboard) IsPressed(key uint8) bool {
	if key >= NumKeys {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key]
}

// WaitKey blocks until the next press edge and returns its key code. A
// key already held, or a press enqueued before the wait began, does not
// satisfy it: the arming barrier travels through the event queue, so
// every earlier press is dequeued before the wait takes effect. Must be
// called from the CPU worker goroutine, never from the event loop.
func (k *Keyboard) WaitKey() uint8 {
	k.events <- KeyEvent{Action: armWait}

	k.waitMu.Lock()
	for k.waitState != keyPressedWhileWaiting {
		k.waitCond.Wait()
	}
	key := k.waitKey
	k.waitState = keyNormal
	k.waitMu.Unlock()
	k.waitCond.Broadcast()

	return key
}
