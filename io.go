package chip8

import "fmt"

// Callbacks is the I/O surface the interpreter calls into while executing
// instructions. Every entry is required. All of them are invoked on the
// goroutine that calls Step, so implementations must be safe to call from
// there; WaitForKey is allowed to block indefinitely.
type Callbacks struct {
	SoundSetter func(uint8)          // FX18: set the sound timer
	TimeSetter  func(uint8)          // FX15: set the delay timer
	TimeGetter  func() uint8         // FX07: read the delay timer
	IsPressed   func(key uint8) bool // EX9E/EXA1: query the key bitmap
	WaitForKey  func() uint8         // FX0A: block until the next key press
	Rand        func() uint8         // CXNN: uniform random byte
}

func (cb *Callbacks) validate() error {
	switch {
	case cb.SoundSetter == nil:
		return fmt.Errorf("chip8: SoundSetter callback is required")
	case cb.TimeSetter == nil:
		return fmt.Errorf("chip8: TimeSetter callback is required")
	case cb.TimeGetter == nil:
		return fmt.Errorf("chip8: TimeGetter callback is required")
	case cb.IsPressed == nil:
		return fmt.Errorf("chip8: IsPressed callback is required")
	case cb.WaitForKey == nil:
		return fmt.Errorf("chip8: WaitForKey callback is required")
	case cb.Rand == nil:
		return fmt.Errorf("chip8: Rand callback is required")
	}
	return nil
}
