package world

// Interval is a closed sub-range of [0,1] along a cell edge.
// Only [0,0] and [0,1] are produced today.
type Interval struct {
	Lo float64
	Hi float64
}

var (
	// Open is an edge with no solid coverage
	Open = Interval{0, 0}
	// Solid is an edge fully covered
	Solid = Interval{0, 1}
)

// IsEmpty is true when the interval covers nothing
func (i Interval) IsEmpty() bool {
	return i.Hi <= i.Lo
}

// Contains reports whether o lies entirely inside i
func (i Interval) Contains(o Interval) bool {
	return i.Lo <= o.Lo && o.Hi <= i.Hi
}

// solidEdges lists which two adjacent edges each shaped variant keeps
var solidEdges = map[Style][2]Edge{
	StyleDiag1:  {North, West},
	StyleRound1: {North, West},
	StyleDiag2:  {South, East},
	StyleRound2: {South, East},
	StyleDiag3:  {North, East},
	StyleRound3: {North, East},
	StyleDiag4:  {South, West},
	StyleRound4: {South, West},
}

// Coverage returns the solid interval of edge e for style s
func Coverage(s Style, e Edge) Interval {
	if s == StyleFull {
		return Solid
	}
	pair, ok := solidEdges[s]
	if !ok {
		return Open
	}
	if pair[0] == e || pair[1] == e {
		return Solid
	}
	return Open
}
