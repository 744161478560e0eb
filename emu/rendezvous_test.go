package emu

import (
	"testing"
	"time"
)

func (r *rendezvous) currentState() execState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func TestRequestSkipsWhileWaitingForKey(t *testing.T) {
	r := newRendezvous()
	r.enterKeyWait()

	if r.requestUpdate() {
		t.Error("requestUpdate succeeded against a worker blocked on a key")
	}
	if r.currentState() != stateWaitingForKey {
		t.Error("requestUpdate disturbed the WaitingForKey state")
	}
}

func TestReadyNeverJumpsToWaitingForKey(t *testing.T) {
	// the only path into WaitingForKey runs on the worker goroutine while
	// it owns an outstanding request, so a fresh rendezvous must go
	// through UpdateRequested first
	r := newRendezvous()
	if r.currentState() != stateReady {
		t.Fatal("fresh rendezvous not Ready")
	}
	if !r.requestUpdate() {
		t.Fatal("requestUpdate refused on a Ready state")
	}
	if r.currentState() != stateUpdateRequested {
		t.Error("requestUpdate did not set UpdateRequested")
	}
}

func TestFeedbackReady(t *testing.T) {
	r := newRendezvous()
	r.requestUpdate()
	go func() {
		r.awaitRequest()
		r.finish()
	}()

	if !r.awaitFeedback() {
		t.Error("awaitFeedback = false after worker finished normally")
	}
}

func TestFeedbackWaitingForKeyStopsBatch(t *testing.T) {
	r := newRendezvous()
	r.requestUpdate()
	go func() {
		r.awaitRequest()
		r.enterKeyWait() // worker hit FX0A instead of finishing
	}()

	if r.awaitFeedback() {
		t.Error("awaitFeedback = true although the worker entered key wait")
	}
}

func TestKeyWaitAbortsBatchMidway(t *testing.T) {
	r := newRendezvous()
	executed := make(chan struct{}, 64)
	release := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			r.awaitRequest()
			if i == 3 {
				r.enterKeyWait()
				<-release
				r.finish() // key wait resolved
				continue
			}
			executed <- struct{}{}
			r.finish()
		}
	}()

	p := newPacer(NewSpeedParams(1000), r)
	p.tick()
	if got := len(executed); got != 3 {
		t.Errorf("batch executed %d instructions before the key wait, want 3", got)
	}

	// while the wait is unresolved every further tick must skip instantly
	done := make(chan struct{})
	go func() {
		p.tick()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tick blocked against a worker waiting for a key")
	}

	close(release)
}
