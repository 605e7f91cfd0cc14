package view

import "math"

const (
	// DefaultDepth is how many cells ahead the scene walks
	DefaultDepth = 5
	// DefaultInset is the per-depth inset as a fraction of the short side
	DefaultInset = 0.07
)

// Frames returns depth+1 nested rectangles, frame i inset from the viewport
// by i*step where step = min(w,h)*k. Frame 0 is the viewport itself.
func Frames(w, h, depth int, k float64) []Rect {
	if depth < 0 {
		depth = 0
	}
	step := math.Min(float64(w), float64(h)) * k
	frames := make([]Rect, depth+1)
	for i := range frames {
		in := float64(i) * step
		frames[i] = Rect{X0: in, Y0: in, X1: float64(w) - in, Y1: float64(h) - in}
	}
	return frames
}
