package anim

import (
	"time"

	"crawlview/pkg/engine/world"
)

// Status says how a transition ended
type Status int

const (
	Completed Status = iota
	Cancelled
)

func (s Status) String() string {
	if s == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// Event is published when a transition ends
type Event struct {
	Pose   world.Pose
	Status Status
}

// Controller tracks the committed pose and at most one transition.
//
// A pose arriving while a transition is running cancels it and starts a new
// transition from the previously committed target, so the view always heads
// for the latest pose.
type Controller struct {
	params    Params
	committed *world.Pose
	active    *Transition
	subs      []func(Event)
}

// NewController creates a controller with the given timings
func NewController(p Params) *Controller {
	return &Controller{params: p}
}

// Params returns the controller's timings
func (c *Controller) Params() Params {
	return c.params
}

// Subscribe registers fn to be called whenever a transition completes or is cancelled
func (c *Controller) Subscribe(fn func(Event)) {
	c.subs = append(c.subs, fn)
}

func (c *Controller) emit(ev Event) {
	for _, fn := range c.subs {
		fn(ev)
	}
}

// Pose returns the committed pose, or nil if none has been set
func (c *Controller) Pose() *world.Pose {
	return c.committed
}

// Active returns the running transition, if any
func (c *Controller) Active() *Transition {
	return c.active
}

// SetPose commits p. It returns true when a transition was started; the
// first pose and repeats of the committed pose are taken without animation.
func (c *Controller) SetPose(p world.Pose, now time.Time) bool {
	if c.committed == nil {
		c.committed = &p
		return false
	}
	if *c.committed == p {
		return false
	}

	if c.active != nil {
		prev := c.active
		c.active = nil
		c.emit(Event{Pose: prev.To, Status: Cancelled})
	}

	from := *c.committed
	c.committed = &p
	c.active = &Transition{
		From:     from,
		To:       p,
		Motion:   Classify(from, p),
		Start:    now,
		Duration: c.params.Duration(from, p),
	}
	return true
}

// Clear forgets the committed pose and drops any transition silently
func (c *Controller) Clear() {
	c.committed = nil
	c.active = nil
}

// Cancel snaps to the committed pose, ending any running transition
func (c *Controller) Cancel() {
	if c.active == nil {
		return
	}
	tr := c.active
	c.active = nil
	c.emit(Event{Pose: tr.To, Status: Cancelled})
}

// Step advances the clock. It returns the running transition with its eased
// progress, or nil once nothing is in flight. Reaching the end publishes a
// Completed event and returns nil so the caller draws the destination as is.
func (c *Controller) Step(now time.Time) (*Transition, float64) {
	tr := c.active
	if tr == nil {
		return nil, 1
	}
	t := tr.Progress(now)
	if t >= 1 {
		c.active = nil
		c.emit(Event{Pose: tr.To, Status: Completed})
		return nil, 1
	}
	return tr, EaseInOutCubic(t)
}
