// Package loop runs a step function once per display frame.
//
// A Loop is a two-state machine. Start moves Stopped to Running and
// schedules the first frame; every frame runs the step and schedules the
// next one only while still Running. Stop moves Running to Stopped and
// cancels the pending frame.
package loop

import "sync"

// State of a Loop
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Loop drives step through a Scheduler.
type Loop struct {
	mu      sync.Mutex
	stepMu  sync.Mutex // held for the whole of a frame
	sched   Scheduler
	step    func()
	state   State
	pending FrameID
	gen     uint64 // bumped on every schedule and on Stop; stale callbacks compare unequal
	frames  uint64
}

// New creates a stopped loop.
func New(sched Scheduler, step func()) *Loop {
	return &Loop{sched: sched, step: step}
}

// Start begins the frame loop. Starting a running loop does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Running {
		return
	}
	l.state = Running
	l.schedule()
}

// Stop cancels the frame loop. Safe to call on a loop that never started,
// and from inside the step. A frame already running on another goroutine
// may still finish; use Halt to wait for it.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Stopped {
		return
	}
	l.state = Stopped
	l.gen++
	l.sched.CancelFrame(l.pending)
	l.pending = 0
}

// Halt stops the loop and waits for a frame in progress on another
// goroutine to finish. No frame runs after Halt returns. Halt must not be
// called from inside the step.
func (l *Loop) Halt() {
	l.Stop()
	l.stepMu.Lock()
	l.stepMu.Unlock()
}

// State reports whether the loop is running.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Frames returns how many frames have executed since creation.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// schedule must be called with mu held.
func (l *Loop) schedule() {
	l.gen++
	gen := l.gen
	l.pending = l.sched.RequestFrame(func() { l.tick(gen) })
}

func (l *Loop) tick(gen uint64) {
	l.stepMu.Lock()
	defer l.stepMu.Unlock()

	l.mu.Lock()
	if l.state != Running || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.frames++
	l.mu.Unlock()

	l.step()

	l.mu.Lock()
	if l.state == Running && gen == l.gen {
		l.schedule()
	}
	l.mu.Unlock()
}
