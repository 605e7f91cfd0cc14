// Package anim animates pose changes: eased cross-fades with parallax
// between two off-screen scenes, and the scheduling of redraws.
package anim

import (
	"time"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/view"
)

// EaseInOutCubic maps linear progress t in [0,1] onto a cubic ease-in-out curve
func EaseInOutCubic(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	default:
		f := -2*t + 2
		return 1 - f*f*f/2
	}
}

// Motion classifies what changed between two poses
type Motion int

const (
	MotionNone Motion = iota
	MotionForward
	MotionBackward
	MotionStrafeLeft
	MotionStrafeRight
	MotionTurnLeft
	MotionTurnRight
)

// Classify reports how to animate from one pose to another. Moves that are
// not a single step relative to the old facing, such as teleports, get a
// plain cross-fade.
func Classify(from, to world.Pose) Motion {
	if !from.SameCell(to) {
		dx, dy := to.X-from.X, to.Y-from.Y
		step := func(e world.Edge) bool {
			ex, ey := e.Delta()
			return dx == ex && dy == ey
		}
		switch {
		case step(from.Facing):
			return MotionForward
		case step(from.Back()):
			return MotionBackward
		case step(from.Left()):
			return MotionStrafeLeft
		case step(from.Right()):
			return MotionStrafeRight
		}
		return MotionNone
	}
	switch to.Facing {
	case from.Facing:
		return MotionNone
	case from.Left():
		return MotionTurnLeft
	default:
		return MotionTurnRight
	}
}

// Params tune transitions
type Params struct {
	MoveDuration time.Duration
	TurnDuration time.Duration
	// Zoom is the scale change of forward/backward motion, e.g. 0.04
	Zoom float64
	// Shift is the horizontal slide of strafes and turns as a share of width
	Shift float64
}

// DefaultParams returns the standard timings
func DefaultParams() Params {
	return Params{
		MoveDuration: 120 * time.Millisecond,
		TurnDuration: 100 * time.Millisecond,
		Zoom:         0.04,
		Shift:        0.08,
	}
}

// Duration returns how long a transition between from and to lasts. A change
// of both cell and facing takes the longer of the two, never the sum.
func (p Params) Duration(from, to world.Pose) time.Duration {
	moved := !from.SameCell(to)
	turned := from.Facing != to.Facing
	switch {
	case moved && turned:
		return max(p.MoveDuration, p.TurnDuration)
	case moved:
		return p.MoveDuration
	case turned:
		return p.TurnDuration
	}
	return 0
}

// Transition is one in-flight animation between two poses
type Transition struct {
	From     world.Pose
	To       world.Pose
	Motion   Motion
	Start    time.Time
	Duration time.Duration
}

// Progress returns linear progress at now, clamped to [0,1]
func (t *Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return min(max(p, 0), 1)
}

// Layers returns how to composite the outgoing and incoming scenes at eased
// progress e on a canvas w pixels wide. The incoming offset shrinks from its
// full size at e=0; the outgoing one rises from nothing and peaks at e=0.5.
// Both are zero at e=1.
func (t *Transition) Layers(e float64, w int, p Params) (from, to view.Transform) {
	from = view.Transform{Alpha: 1 - e, Scale: 1}
	to = view.Transform{Alpha: e, Scale: 1}
	out, in := 2*e*(1-e), 1-e

	switch t.Motion {
	case MotionForward, MotionBackward:
		dir := 1.0
		if t.Motion == MotionBackward {
			dir = -1
		}
		from.Scale = 1 + p.Zoom*out*dir
		to.Scale = 1 - p.Zoom*in*dir
	case MotionStrafeLeft, MotionStrafeRight, MotionTurnLeft, MotionTurnRight:
		sign := 1.0
		if t.Motion == MotionStrafeLeft || t.Motion == MotionTurnLeft {
			sign = -1
		}
		shift := p.Shift * float64(w)
		from.DX = -sign * shift * out
		to.DX = sign * shift * in
	}
	return from, to
}
