package emu

import (
	"testing"
	"time"
)

func TestSpeedParams500Hz(t *testing.T) {
	p := NewSpeedParams(500)
	if p.InstructionsPerTick != 10 {
		t.Errorf("InstructionsPerTick = %d, want 10", p.InstructionsPerTick)
	}
	if p.TimeBudget != 20*time.Millisecond {
		t.Errorf("TimeBudget = %v, want 20ms", p.TimeBudget)
	}
	if p.TargetAccuracy != 2*time.Millisecond {
		t.Errorf("TargetAccuracy = %v, want 2ms", p.TargetAccuracy)
	}
}

func TestTimeBudgetIdentity(t *testing.T) {
	for _, clock := range []uint{60, 400, 500, 700, 1000} {
		p := NewSpeedParams(clock)
		want := time.Duration(p.InstructionsPerTick) * time.Duration(1e9/float64(clock))
		if p.TimeBudget != want {
			t.Errorf("clock %d Hz: TimeBudget = %v, want %v", clock, p.TimeBudget, want)
		}
	}
}

func TestTargetAccuracyIsTenthOfBudget(t *testing.T) {
	for _, clock := range []uint{60, 500, 1000} {
		p := NewSpeedParams(clock)
		if p.TargetAccuracy != p.TimeBudget/10 {
			t.Errorf("clock %d Hz: TargetAccuracy = %v, want %v",
				clock, p.TargetAccuracy, p.TimeBudget/10)
		}
	}
}

func TestTickDrivesFullBatch(t *testing.T) {
	r := newRendezvous()
	executed := make(chan struct{}, 64)
	go func() {
		for {
			r.awaitRequest()
			executed <- struct{}{}
			r.finish()
		}
	}()

	p := newPacer(NewSpeedParams(1000), r)
	p.tick()

	if got := len(executed); got != p.params.InstructionsPerTick {
		t.Errorf("executed %d instructions in one tick, want %d",
			got, p.params.InstructionsPerTick)
	}
}
