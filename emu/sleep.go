package emu

import (
	"runtime"
	"time"
)

// spinMargin is how much of a requested sleep is left to the spin phase.
// time.Sleep alone overshoots by scheduler quanta, which at a 20 ms tick
// budget is audible drift; spinning the tail end keeps the wakeup tight.
const spinMargin = 100 * time.Microsecond

// preciseSleep sleeps for d with sub-millisecond accuracy: a plain sleep
// for the bulk of the duration, then a yield loop until the deadline.
func preciseSleep(d time.Duration) {
	deadline := time.Now().Add(d)
	if coarse := d - spinMargin; coarse > 0 {
		time.Sleep(coarse)
	}
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
