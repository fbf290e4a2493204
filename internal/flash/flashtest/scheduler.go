// Package flashtest provides a virtual-time scheduler for testing code that
// uses flash.Service.
package flashtest

import (
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/flash/internal/flash"
)

// Scheduler is a flash.Scheduler driven by Advance instead of wall time.
// Callbacks run synchronously on the goroutine calling Advance.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*timer
}

type timer struct {
	s     *Scheduler
	at    time.Duration
	seq   uint64
	fn    func()
	state int // 0 pending, 1 fired, 2 stopped
}

var _ flash.Scheduler = (*Scheduler)(nil)

// New creates a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule registers fn to run once d of virtual time has passed.
func (s *Scheduler) Schedule(d time.Duration, fn func()) flash.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer if it has not fired.
func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.state != 0 {
		return false
	}
	t.state = 2
	t.s.timers = slices.DeleteFunc(t.s.timers, func(o *timer) bool { return o == t })
	return true
}

// Advance moves virtual time forward by d, firing every timer that falls due
// in deadline order. Timers scheduled by a callback fire in the same call if
// they fall due before the new time.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.state = 1
		s.timers = slices.DeleteFunc(s.timers, func(o *timer) bool { return o == next })
		s.mu.Unlock()

		next.fn()
	}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) nextDue(target time.Duration) *timer {
	var next *timer
	for _, t := range s.timers {
		if t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
