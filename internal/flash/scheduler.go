package flash

import "time"

// Timer is a handle to a scheduled callback. Stop cancels it and reports
// whether the call prevented the callback from running. Stopping a fired or
// already stopped timer is a no-op.
type Timer interface {
	Stop() bool
}

// Scheduler runs single-shot delayed callbacks.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// SystemScheduler schedules callbacks on the runtime timer heap.
type SystemScheduler struct{}

// Schedule runs fn in its own goroutine after d.
func (SystemScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
