package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FrameID identifies a pending frame callback.
type FrameID uint64

// Scheduler is a per-frame callback mechanism, the equivalent of a browser's
// requestAnimationFrame. Implementations must never run fn synchronously
// from inside RequestFrame.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Queue is a manually pumped scheduler. Each Tick runs the callbacks that
// were pending when Tick was called; callbacks requested during a Tick wait
// for the next one.
type Queue struct {
	mu      sync.Mutex
	nextID  FrameID
	pending map[FrameID]func()
	order   []FrameID
}

// NewQueue creates an empty frame queue
func NewQueue() *Queue {
	return &Queue{pending: make(map[FrameID]func())}
}

func (q *Queue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending[q.nextID] = fn
	q.order = append(q.order, q.nextID)
	return q.nextID
}

func (q *Queue) CancelFrame(id FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// Pending returns the number of callbacks waiting for the next Tick.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Tick runs one frame worth of callbacks and reports how many ran.
func (q *Queue) Tick() int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	fns := make([]func(), 0, len(order))
	for _, id := range order {
		if fn, ok := q.pending[id]; ok {
			fns = append(fns, fn)
			delete(q.pending, id)
		}
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Ticker pumps a Queue at a fixed cadence on its own goroutine until the
// context is cancelled. It stands in for a display refresh signal where the
// host has none (terminals, headless runs).
type Ticker struct {
	*Queue
	interval time.Duration
	running  atomic.Bool
}

// NewTicker creates a ticker scheduler firing every interval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Ticker{Queue: NewQueue(), interval: interval}
}

// Run blocks, ticking the queue until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	t.running.Store(true)
	defer t.running.Store(false)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			t.Tick()
		}
	}
}

// Running reports whether Run is in progress
func (t *Ticker) Running() bool {
	return t.running.Load()
}
