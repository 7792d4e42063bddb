package visualizer

import (
	"sync"
	"time"
)

// Scheduler requests a single future invocation of fn, the equivalent of
// an animation-frame request. The returned cancel func withdraws it.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// StepScheduler holds at most one pending frame and runs it on Tick.
type StepScheduler struct {
	mu      sync.Mutex
	pending func()
	seq     uint64
}

func NewStepScheduler() *StepScheduler { return &StepScheduler{} }

func (s *StepScheduler) RequestFrame(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := s.seq
	s.pending = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.seq == id {
			s.pending = nil
		}
	}
}

// Tick runs the pending frame, if any, and reports whether one ran.
func (s *StepScheduler) Tick() bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a frame is waiting for Tick.
func (s *StepScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// TickerScheduler fires each requested frame after a fixed interval.
type TickerScheduler struct {
	interval time.Duration
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{interval: time.Second / time.Duration(fps)}
}

func (s *TickerScheduler) Interval() time.Duration { return s.interval }

func (s *TickerScheduler) RequestFrame(fn func()) func() {
	t := time.AfterFunc(s.interval, fn)
	return func() { t.Stop() }
}
