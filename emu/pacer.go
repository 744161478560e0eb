package emu

import "time"

// DefaultClockSpeed is the emulated clock rate used when none is
// configured. Most CHIP-8 programs are tuned for the 400-1000 Hz range.
const DefaultClockSpeed = 500

// instructionsPerTick batches several instructions per pacing tick to
// stay clear of host scheduler granularity. The batch must stay small
// enough that input latency remains below ~25 ms at realistic clock
// speeds.
const instructionsPerTick = 10

// accuracyFactor controls time-skipping: a tick skips its sleep when less
// than 1/accuracyFactor of the budget would remain after the previous
// tick's actual elapsed time.
const accuracyFactor = 10

// SpeedParams is derived once from the configured clock speed and is
// immutable for the process lifetime.
type SpeedParams struct {
	InstructionsPerTick int
	TimeBudget          time.Duration // wall time one tick should consume
	TargetAccuracy      time.Duration // sleep slack below which sleeping is skipped
}

func NewSpeedParams(clockSpeed uint) SpeedParams {
	targetClock := time.Duration(1e9 / float64(clockSpeed))
	budget := targetClock * instructionsPerTick
	return SpeedParams{
		InstructionsPerTick: instructionsPerTick,
		TimeBudget:          budget,
		TargetAccuracy:      budget / accuracyFactor,
	}
}

// pacer runs on the presentation thread, once per frame callback. It
// sleeps away whatever remains of the tick budget, then drives the
// rendezvous for one batch of instructions.
type pacer struct {
	params SpeedParams
	rdv    *rendezvous
	last   time.Time
}

func newPacer(params SpeedParams, rdv *rendezvous) *pacer {
	return &pacer{params: params, rdv: rdv}
}

func (p *pacer) tick() {
	elapsed := time.Since(p.last)

	// time-skipping: if the previous tick already consumed nearly the
	// whole budget, don't pile a sleep on top of a late tick
	if p.params.TimeBudget > p.params.TargetAccuracy+elapsed {
		preciseSleep(p.params.TimeBudget - elapsed)
	}
	p.last = time.Now()

	for i := 0; i < p.params.InstructionsPerTick; i++ {
		if !p.rdv.requestUpdate() {
			break
		}
		if !p.rdv.awaitFeedback() {
			break
		}
	}
}
