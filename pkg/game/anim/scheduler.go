package anim

import "sync"

// RedrawScheduler coalesces redraw requests. Any number of requests made
// before the next frame result in a single redraw.
type RedrawScheduler struct {
	mu      sync.Mutex
	pending bool
	wake    chan struct{}
}

// NewRedrawScheduler creates a scheduler with one redraw already pending
func NewRedrawScheduler() *RedrawScheduler {
	s := &RedrawScheduler{wake: make(chan struct{}, 1)}
	s.Request()
	return s
}

// Request schedules a redraw. It returns false when one was already pending.
// Safe to call from any goroutine.
func (s *RedrawScheduler) Request() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.pending = true
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// Take reports whether a redraw is due and clears it
func (s *RedrawScheduler) Take() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := s.pending
	s.pending = false
	return due
}

// Pending reports whether a redraw is due without clearing it
func (s *RedrawScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Wake is signalled when a redraw becomes pending, for loops that sleep
// between frames.
func (s *RedrawScheduler) Wake() <-chan struct{} {
	return s.wake
}
