// Package frame schedules per-frame callbacks and runs cancelable
// self-rescheduling loops on top of them.
//
// Nothing here is goroutine-safe: a Queue and every Loop on it belong to the
// single goroutine that drains the queue.
package frame

import "time"

// ID identifies a scheduled callback. The zero ID is never issued.
type ID uint64

// Callback runs once on the frame it was scheduled for.
type Callback func(now time.Time)

// Scheduler hands out frames, the way a display host hands out animation
// frames.
type Scheduler interface {
	Request(cb Callback) ID
	Cancel(id ID)
}

type request struct {
	id ID
	cb Callback
}

// Queue is a Scheduler drained explicitly by RunFrame. A host calls RunFrame
// on each display tick; tests call it to step time deterministically.
type Queue struct {
	next    ID
	pending []request
	running map[ID]bool
	frames  uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Request schedules cb for the next RunFrame.
func (q *Queue) Request(cb Callback) ID {
	q.next++
	q.pending = append(q.pending, request{id: q.next, cb: cb})
	return q.next
}

// Cancel drops a pending callback. Unknown or already-run ids are ignored.
func (q *Queue) Cancel(id ID) {
	if q.running[id] {
		q.running[id] = false
		return
	}
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks wait for the next frame.
func (q *Queue) Pending() int { return len(q.pending) }

// Frames reports how many frames have run.
func (q *Queue) Frames() uint64 { return q.frames }

// RunFrame runs the callbacks scheduled before the call, in request order,
// and returns how many ran. Callbacks requested while the frame runs wait
// for the next one. A callback canceled by an earlier one in the same frame
// does not run.
func (q *Queue) RunFrame(now time.Time) int {
	batch := q.pending
	q.pending = nil
	q.frames++
	q.running = make(map[ID]bool, len(batch))
	for _, r := range batch {
		q.running[r.id] = true
	}
	ran := 0
	for _, r := range batch {
		if !q.running[r.id] {
			continue
		}
		delete(q.running, r.id)
		r.cb(now)
		ran++
	}
	q.running = nil
	return ran
}
