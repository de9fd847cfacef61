package frame

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestQueueRunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	q.Request(func(time.Time) { got = append(got, 1) })
	q.Request(func(time.Time) { got = append(got, 2) })
	if n := q.RunFrame(epoch); n != 2 {
		t.Fatalf("ran %d callbacks, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("order = %v", got)
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d after frame", q.Pending())
	}
}

func TestQueueDefersRequestsMadeDuringFrame(t *testing.T) {
	q := NewQueue()
	calls := 0
	q.Request(func(time.Time) {
		calls++
		q.Request(func(time.Time) { calls++ })
	})
	q.RunFrame(epoch)
	if calls != 1 {
		t.Fatalf("calls = %d after first frame, want 1", calls)
	}
	q.RunFrame(epoch)
	if calls != 2 {
		t.Errorf("calls = %d after second frame, want 2", calls)
	}
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	ran := false
	id := q.Request(func(time.Time) { ran = true })
	q.Cancel(id)
	q.Cancel(id)
	q.Cancel(999)
	q.RunFrame(epoch)
	if ran {
		t.Error("canceled callback ran")
	}
}

func TestQueueCancelWithinFrame(t *testing.T) {
	q := NewQueue()
	var second ID
	ran := false
	q.Request(func(time.Time) { q.Cancel(second) })
	second = q.Request(func(time.Time) { ran = true })
	if n := q.RunFrame(epoch); n != 1 {
		t.Errorf("ran %d, want 1", n)
	}
	if ran {
		t.Error("callback canceled earlier in the frame still ran")
	}
}

func TestLoopRunsUntilIdle(t *testing.T) {
	q := NewQueue()
	remaining := 3
	l := NewLoop(q, func(time.Time) bool {
		remaining--
		return remaining > 0
	})
	l.Start()
	for i := 0; i < 10; i++ {
		q.RunFrame(epoch)
	}
	if l.Ticks() != 3 {
		t.Errorf("ticks = %d, want 3", l.Ticks())
	}
	if l.Running() || q.Pending() != 0 {
		t.Error("loop should have stopped itself")
	}
}

func TestLoopStartIsIdempotent(t *testing.T) {
	q := NewQueue()
	l := NewLoop(q, func(time.Time) bool { return true })
	l.Start()
	l.Start()
	if q.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.Pending())
	}
	q.RunFrame(epoch)
	if q.Pending() != 1 || l.Ticks() != 1 {
		t.Errorf("pending=%d ticks=%d", q.Pending(), l.Ticks())
	}
}

func TestLoopStopFromTick(t *testing.T) {
	q := NewQueue()
	var l *Loop
	l = NewLoop(q, func(time.Time) bool {
		l.Stop()
		return true
	})
	l.Start()
	q.RunFrame(epoch)
	if l.Running() || q.Pending() != 0 {
		t.Error("stop inside tick did not take")
	}
}

func TestLoopStopCancelsPending(t *testing.T) {
	q := NewQueue()
	l := NewLoop(q, func(time.Time) bool { return true })
	l.Start()
	l.Stop()
	q.RunFrame(epoch)
	if l.Ticks() != 0 {
		t.Errorf("ticks = %d after stop", l.Ticks())
	}
	l.Start()
	q.RunFrame(epoch)
	if l.Ticks() != 1 {
		t.Errorf("ticks = %d after restart", l.Ticks())
	}
}

// Any sequence of Start/Stop/frame operations leaves at most one frame
// pending per loop.
func TestLoopSinglePendingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := NewQueue()
		a := NewLoop(q, func(time.Time) bool { return true })
		b := NewLoop(q, func(time.Time) bool { return true })
		ops := rapid.SliceOfN(rapid.IntRange(0, 4), 1, 60).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				a.Start()
			case 1:
				a.Stop()
			case 2:
				b.Start()
			case 3:
				b.Stop()
			case 4:
				q.RunFrame(epoch)
			}
			want := 0
			if a.Running() {
				want++
			}
			if b.Running() {
				want++
			}
			if q.Pending() != want {
				t.Fatalf("pending = %d, running loops = %d", q.Pending(), want)
			}
		}
	})
}
