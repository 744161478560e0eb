package emu

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	beepSampleRate = 48000
	beepFrequency  = 440 // Hz
	beepAmplitude  = 6000
)

// oto context singleton; the library allows only one per process
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

func beepContext() (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   beepSampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-ready
	})
	return otoCtx, otoInitErr
}

// OtoBeeper plays a looping square wave while resumed. Resume and Pause
// are cheap and idempotent, as the sound timer invokes them every tick.
type OtoBeeper struct {
	mu     sync.Mutex
	player *oto.Player
}

func NewBeeper() (*OtoBeeper, error) {
	ctx, err := beepContext()
	if err != nil {
		return nil, fmt.Errorf("emu: audio not available: %w", err)
	}
	return &OtoBeeper{player: ctx.NewPlayer(&squareWave{})}, nil
}

func (b *OtoBeeper) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.player.IsPlaying() {
		b.player.Play()
	}
}

func (b *OtoBeeper) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player.IsPlaying() {
		b.player.Pause()
	}
}

// squareWave is an endless mono int16 square wave at beepFrequency.
type squareWave struct {
	phase int
}

func (w *squareWave) Read(p []byte) (int, error) {
	const period = beepSampleRate / beepFrequency

	n := len(p) &^ 1 // whole samples only
	for i := 0; i < n; i += 2 {
		s := int16(beepAmplitude)
		if w.phase < period/2 {
			s = -beepAmplitude
		}
		p[i] = byte(s)
		p[i+1] = byte(uint16(s) >> 8)

		w.phase++
		if w.phase >= period {
			w.phase = 0
		}
	}
	return n, nil
}
