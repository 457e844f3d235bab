// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"sync"
	"time"

	"github.com/gogpu/rosette"
)

// DefaultStatsDelay is how long after a draw the stats are delivered.
const DefaultStatsDelay = 500 * time.Millisecond

// Stats are the primitive counts of the most recent draw, summed over all
// leaves.
type Stats struct {
	Triangles int
	Lines     int
	Points    int
}

// Timer is a pending scheduled call.
type Timer interface {
	// Stop cancels the call. It reports whether the call was prevented.
	Stop() bool
}

// Scheduler runs f once after d on another goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc calls fn(d, f).
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// TimeScheduler schedules with time.AfterFunc.
var TimeScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// Reporter delivers stats after each draw.
//
// With a zero delay, Report calls the callback before returning. Otherwise
// delivery is scheduled; a newer Report cancels an older pending one so
// only the latest draw is reported. After Close nothing is delivered.
type Reporter struct {
	mu      sync.Mutex
	delay   time.Duration
	sched   Scheduler
	deliver func(Stats)
	pending Timer
	gen     uint64
	closed  bool
	last    Stats
	sent    int
}

// NewReporter returns a reporter calling deliver. A nil scheduler means
// TimeScheduler.
func NewReporter(delay time.Duration, sched Scheduler, deliver func(Stats)) *Reporter {
	if sched == nil {
		sched = TimeScheduler
	}
	return &Reporter{delay: delay, sched: sched, deliver: deliver}
}

// Report queues st for delivery.
func (r *Reporter) Report(st Stats) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		rosette.Logger().Debug("session: stats dropped after destroy")
		return
	}
	r.gen++
	r.last = st
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
	if r.delay <= 0 {
		r.sent++
		r.mu.Unlock()
		r.call(st)
		return
	}
	gen := r.gen
	r.pending = r.sched.AfterFunc(r.delay, func() { r.fire(gen, st) })
	r.mu.Unlock()
}

func (r *Reporter) fire(gen uint64, st Stats) {
	r.mu.Lock()
	if r.closed || gen != r.gen {
		r.mu.Unlock()
		rosette.Logger().Debug("session: stale stats dropped", "gen", gen)
		return
	}
	r.pending = nil
	r.sent++
	r.mu.Unlock()
	r.call(st)
}

func (r *Reporter) call(st Stats) {
	if r.deliver != nil {
		r.deliver(st)
	}
}

// Pending reports whether a delivery is scheduled.
func (r *Reporter) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

// Last returns the most recently reported stats, delivered or not.
func (r *Reporter) Last() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Delivered returns how many reports reached the callback.
func (r *Reporter) Delivered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

// Close cancels a pending delivery and drops all later ones.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}
