package world

// Edge represents one of the four cardinal sides of a cell
type Edge int

// Edge constants. The numeric values double as Pose facings.
const (
	North Edge = iota
	East
	South
	West
)

// AllEdges returns all valid edges for iteration
func AllEdges() []Edge {
	return []Edge{North, East, South, West}
}

// String returns the short name of an edge as used in dungeon files
func (e Edge) String() string {
	switch e {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// ParseEdge converts "N", "E", "S" or "W" (any case, or the full word) to an Edge
func ParseEdge(s string) (Edge, bool) {
	switch s {
	case "N", "n", "north", "North":
		return North, true
	case "E", "e", "east", "East":
		return East, true
	case "S", "s", "south", "South":
		return South, true
	case "W", "w", "west", "West":
		return West, true
	default:
		return North, false
	}
}

// IsValid returns true if the edge is a valid cardinal direction
func (e Edge) IsValid() bool {
	return e >= North && e <= West
}

// Opposite returns the opposite edge
func (e Edge) Opposite() Edge {
	switch e {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return e
	}
}

// Right returns the edge a quarter turn clockwise
func (e Edge) Right() Edge {
	return Edge((int(e) + 1) & 3)
}

// Left returns the edge a quarter turn counter-clockwise
func (e Edge) Left() Edge {
	return Edge((int(e) + 3) & 3)
}

// Delta returns the x and y offsets for this edge. Y grows southwards.
func (e Edge) Delta() (dx, dy int) {
	switch e {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
