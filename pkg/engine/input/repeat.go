package input

import (
	"sync"
	"time"
)

// Default key repeat timings for held keys
const (
	DefaultRepeatDelay    = 300 * time.Millisecond
	DefaultRepeatInterval = 120 * time.Millisecond
)

type repeatInfo struct {
	firstPressed time.Time
	lastRepeat   time.Time
}

// Repeater turns a held key or button into a stream of presses: one on the
// initial press, then one every Interval once Delay has passed.
type Repeater struct {
	Delay    time.Duration
	Interval time.Duration

	mu    sync.Mutex
	state map[string]repeatInfo
}

// NewRepeater creates a repeater with the given timings
func NewRepeater(delay, interval time.Duration) *Repeater {
	return &Repeater{
		Delay:    delay,
		Interval: interval,
		state:    make(map[string]repeatInfo),
	}
}

// Should reports whether code should trigger now given whether it is pressed
func (r *Repeater) Should(code string, pressed bool, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, held := r.state[code]
	if !pressed {
		delete(r.state, code)
		return false
	}
	if !held {
		r.state[code] = repeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}
	if now.Sub(st.firstPressed) < r.Delay || now.Sub(st.lastRepeat) < r.Interval {
		return false
	}
	st.lastRepeat = now
	r.state[code] = st
	return true
}

// Reset forgets every held key
func (r *Repeater) Reset() {
	r.mu.Lock()
	clear(r.state)
	r.mu.Unlock()
}
