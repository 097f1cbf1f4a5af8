package engine

import (
	"sync"
	"time"
)

// FrameRate is the fixed animation frame rate.
const FrameRate = 60

// FrameInterval is the time between two animation frames.
const FrameInterval = time.Second / FrameRate

// Scheduler runs animation frames. NextFrame must not run fn synchronously.
type Scheduler interface {
	Now() time.Time
	NextFrame(fn func())
}

// ManualScheduler is a Scheduler whose clock only moves when stepped. It is
// used by tests and tape playback to run animations deterministically.
type ManualScheduler struct {
	now     time.Time
	pending []func()
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now implements Scheduler.
func (s *ManualScheduler) Now() time.Time { return s.now }

// NextFrame implements Scheduler.
func (s *ManualScheduler) NextFrame(fn func()) {
	s.pending = append(s.pending, fn)
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

// Step advances the clock by one frame and runs the callbacks that were
// queued before the step. It reports whether anything ran.
func (s *ManualScheduler) Step() bool {
	if len(s.pending) == 0 {
		return false
	}
	s.now = s.now.Add(FrameInterval)
	run := s.pending
	s.pending = nil
	for _, fn := range run {
		fn()
	}
	return true
}

// Drain steps until nothing is pending or limit frames have run, and
// returns the number of frames stepped. A limit <= 0 means no limit.
func (s *ManualScheduler) Drain(limit int) int {
	n := 0
	for (limit <= 0 || n < limit) && s.Step() {
		n++
	}
	return n
}

// TickScheduler queues frames until the host's own ticker calls Run. It lets
// an event loop such as Bubble Tea run animation frames on its goroutine.
type TickScheduler struct {
	mu      sync.Mutex
	clock   func() time.Time
	pending []func()
}

// NewTickScheduler returns a scheduler reading time from clock, or from
// time.Now when clock is nil.
func NewTickScheduler(clock func() time.Time) *TickScheduler {
	if clock == nil {
		clock = time.Now
	}
	return &TickScheduler{clock: clock}
}

// Now implements Scheduler.
func (s *TickScheduler) Now() time.Time { return s.clock() }

// NextFrame implements Scheduler.
func (s *TickScheduler) NextFrame(fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Pending reports whether a frame is waiting for the next tick.
func (s *TickScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Run executes the frames queued before the call and reports whether any ran.
func (s *TickScheduler) Run() bool {
	s.mu.Lock()
	run := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, fn := range run {
		fn()
	}
	return len(run) > 0
}
