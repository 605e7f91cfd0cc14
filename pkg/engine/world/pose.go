package world

import "fmt"

// Pose is the viewer's cell and facing
type Pose struct {
	X      int
	Y      int
	Facing Edge
}

// NewPose builds a pose from a numeric facing 0..3 (N,E,S,W), wrapping
func NewPose(x, y, facing int) Pose {
	return Pose{X: x, Y: y, Facing: Edge(((facing % 4) + 4) % 4)}
}

// String returns a compact representation for logs
func (p Pose) String() string {
	return fmt.Sprintf("(%d,%d %s)", p.X, p.Y, p.Facing)
}

// Left returns the edge to the viewer's left
func (p Pose) Left() Edge {
	return p.Facing.Left()
}

// Right returns the edge to the viewer's right
func (p Pose) Right() Edge {
	return p.Facing.Right()
}

// Back returns the edge behind the viewer
func (p Pose) Back() Edge {
	return p.Facing.Opposite()
}

// Step returns the pose moved one cell across edge e, keeping facing
func (p Pose) Step(e Edge) Pose {
	dx, dy := e.Delta()
	return Pose{X: p.X + dx, Y: p.Y + dy, Facing: p.Facing}
}

// TurnLeft returns the pose rotated a quarter turn counter-clockwise
func (p Pose) TurnLeft() Pose {
	p.Facing = p.Facing.Left()
	return p
}

// TurnRight returns the pose rotated a quarter turn clockwise
func (p Pose) TurnRight() Pose {
	p.Facing = p.Facing.Right()
	return p
}

// SameCell reports whether two poses share a cell
func (p Pose) SameCell(o Pose) bool {
	return p.X == o.X && p.Y == o.Y
}
