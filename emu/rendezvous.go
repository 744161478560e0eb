package emu

import (
	"runtime"
	"sync"
)

// execState is the three-way handshake between the presentation thread and
// the CPU worker. The presentation side is the only writer of
// stateUpdateRequested; the worker side (including the wait-for-key path,
// which runs on the worker goroutine) owns every other transition.
type execState int

const (
	stateReady execState = iota
	stateUpdateRequested
	stateWaitingForKey
)

type rendezvous struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state execState
}

func newRendezvous() *rendezvous {
	r := &rendezvous{state: stateReady}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// requestUpdate asks the worker to execute one instruction. It reports
// false, without touching the state, when the worker is blocked in
// wait-for-key: the caller must abandon the rest of its batch rather than
// nag a worker that cannot make progress.
func (r *rendezvous) requestUpdate() bool {
	r.mu.Lock()
	if r.state == stateWaitingForKey {
		r.mu.Unlock()
		return false
	}
	r.state = stateUpdateRequested
	r.mu.Unlock()
	r.cond.Broadcast()
	return true
}

// awaitFeedback blocks until the worker has answered the outstanding
// request. It reports true when the instruction completed and another one
// may be requested, false when the worker entered wait-for-key mid-batch.
func (r *rendezvous) awaitFeedback() bool {
	r.mu.Lock()
	for r.state == stateUpdateRequested {
		r.cond.Wait()
	}
	state := r.state
	r.mu.Unlock()

	switch state {
	case stateReady:
		return true
	case stateWaitingForKey:
		return false
	}
	panic("emu: rendezvous left in an impossible state")
}

// awaitRequest blocks the worker until an update has been requested. If a
// previous wait-for-key is still unresolved it yields instead of waiting:
// only the blocked key-wait may clear that state.
func (r *rendezvous) awaitRequest() {
	for {
		r.mu.Lock()
		if r.state == stateWaitingForKey {
			r.mu.Unlock()
			runtime.Gosched()
			continue
		}
		for r.state != stateUpdateRequested {
			r.cond.Wait()
		}
		r.mu.Unlock()
		return
	}
}

// finish marks the requested instruction as complete. Called by the worker
// only, after Step has returned and can no longer block.
func (r *rendezvous) finish() {
	r.mu.Lock()
	r.state = stateReady
	r.mu.Unlock()
	r.cond.Broadcast()
}

// enterKeyWait flags the worker as blocked on a key press. It must run on
// the worker goroutine itself, before the actual blocking wait begins, so
// that no third party ever performs this transition.
func (r *rendezvous) enterKeyWait() {
	r.mu.Lock()
	r.state = stateWaitingForKey
	r.mu.Unlock()
	r.cond.Broadcast()
}
