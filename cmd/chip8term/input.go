package main

import (
	"os"
	"time"

	"github.com/ariotta/chip8/emu"
)

// keyHoldWindow is how long a key counts as held after its last byte.
// Terminal autorepeat keeps refreshing the window while the key is
// physically down.
const keyHoldWindow = 150 * time.Millisecond

// keyMap is the usual 4x4 mapping onto the left of a QWERTY layout.
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// readInput consumes raw stdin bytes and turns them into edge-detected
// key events: a first byte is a press, expiry of the hold window is the
// release. KeyDown and KeyUp are only ever called from this goroutine.
// Ctrl-C or Esc closes quit.
func readInput(e *emu.Emulator, quit chan<- struct{}) {
	bytes := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(bytes)
				return
			}
			if n > 0 {
				bytes <- buf[0]
			}
		}
	}()

	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()

	deadlines := make(map[uint8]time.Time)
	for {
		select {
		case b, ok := <-bytes:
			if !ok || b == 0x03 || b == 0x1b { // EOF, Ctrl-C, Esc
				close(quit)
				return
			}
			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}
			key, mapped := keyMap[b]
			if !mapped {
				continue
			}
			if _, held := deadlines[key]; !held {
				e.KeyDown(key)
			}
			deadlines[key] = time.Now().Add(keyHoldWindow)

		case now := <-ticker.C:
			for key, deadline := range deadlines {
				if now.After(deadline) {
					e.KeyUp(key)
					delete(deadlines, key)
				}
			}
		}
	}
}
