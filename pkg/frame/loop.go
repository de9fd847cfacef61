package frame

import "time"

// Loop calls a tick function once per frame for as long as it returns true.
type Loop struct {
	sched   Scheduler
	tick    func(now time.Time) bool
	pending ID
	running bool
	ticks   uint64
}

// NewLoop binds tick to a scheduler. The loop starts stopped.
func NewLoop(s Scheduler, tick func(now time.Time) bool) *Loop {
	return &Loop{sched: s, tick: tick}
}

// Start schedules the next tick. Starting a running loop is a no-op, so at
// most one frame is ever pending per loop.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.pending = l.sched.Request(l.run)
}

// Stop cancels the pending frame. The tick function is not called again
// until Start.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.sched.Cancel(l.pending)
	l.pending = 0
}

// Running reports whether a frame is pending.
func (l *Loop) Running() bool { return l.running }

// Ticks reports how many times the tick function has run.
func (l *Loop) Ticks() uint64 { return l.ticks }

func (l *Loop) run(now time.Time) {
	l.pending = 0
	l.ticks++
	if !l.tick(now) {
		l.running = false
		return
	}
	// tick may have called Stop.
	if l.running {
		l.pending = l.sched.Request(l.run)
	}
}
