package world

import (
	"github.com/zyedidia/generic/mapset"
)

// EdgeKey addresses one side of one cell
type EdgeKey struct {
	X    int
	Y    int
	Edge Edge
}

// Mirror returns the same boundary as seen from the neighboring cell
func (k EdgeKey) Mirror() EdgeKey {
	nx, ny := Neighbor(k.X, k.Y, k.Edge)
	return EdgeKey{X: nx, Y: ny, Edge: k.Edge.Opposite()}
}

// Canonical folds South and East keys onto the neighbor's North and West
// keys, so a boundary has exactly one canonical address whichever side it
// was authored from.
func (k EdgeKey) Canonical() EdgeKey {
	if k.Edge == South || k.Edge == East {
		return k.Mirror()
	}
	return k
}

// WallSegment is an impassable boundary. When Decor is set the segment is a
// decorative internal diagonal for a shaped cell and carries no collision.
type WallSegment struct {
	X     int
	Y     int
	Edge  Edge
	Decor Style
}

// Key returns the edge address of the segment
func (w WallSegment) Key() EdgeKey {
	return EdgeKey{X: w.X, Y: w.Y, Edge: w.Edge}
}

// IsDecor is true for decorative segments
func (w WallSegment) IsDecor() bool {
	return w.Decor != StyleNone
}

// Door sits on a boundary and overrides its passability
type Door struct {
	X      int
	Y      int
	Edge   Edge
	Locked bool
	Opened bool
	Type   string
}

// Key returns the edge address of the door
func (d *Door) Key() EdgeKey {
	return EdgeKey{X: d.X, Y: d.Y, Edge: d.Edge}
}

// Passable is true for an unlocked, opened door
func (d *Door) Passable() bool {
	return d != nil && !d.Locked && d.Opened
}

// BoundaryIndex answers wall and door lookups for a boundary from either side.
// Every consumer (resolver, renderer, minimap) goes through it.
type BoundaryIndex struct {
	walls mapset.Set[EdgeKey]
	doors map[EdgeKey]*Door
}

// NewBoundaryIndex indexes the given collision walls and doors.
// Decorative segments are skipped; duplicates are harmless.
func NewBoundaryIndex(walls []WallSegment, doors []*Door) *BoundaryIndex {
	idx := &BoundaryIndex{
		walls: mapset.New[EdgeKey](),
		doors: make(map[EdgeKey]*Door, len(doors)),
	}
	for _, w := range walls {
		idx.AddWall(w)
	}
	for _, d := range doors {
		idx.AddDoor(d)
	}
	return idx
}

// AddWall records a collision wall
func (b *BoundaryIndex) AddWall(w WallSegment) {
	if w.IsDecor() || !w.Edge.IsValid() {
		return
	}
	b.walls.Put(w.Key().Canonical())
}

// AddDoor records a door. The first door authored on a boundary wins.
func (b *BoundaryIndex) AddDoor(d *Door) {
	if d == nil || !d.Edge.IsValid() {
		return
	}
	k := d.Key().Canonical()
	if _, exists := b.doors[k]; !exists {
		b.doors[k] = d
	}
}

// HasWall checks (x,y,e) and its mirrored neighbor key
func (b *BoundaryIndex) HasWall(x, y int, e Edge) bool {
	if b == nil {
		return false
	}
	return b.walls.Has(EdgeKey{X: x, Y: y, Edge: e}.Canonical())
}

// DoorAt returns the door on (x,y,e) or its mirrored neighbor key, or nil
func (b *BoundaryIndex) DoorAt(x, y int, e Edge) *Door {
	if b == nil {
		return nil
	}
	return b.doors[EdgeKey{X: x, Y: y, Edge: e}.Canonical()]
}

// WallCount returns the number of distinct collision boundaries
func (b *BoundaryIndex) WallCount() int {
	if b == nil {
		return 0
	}
	return b.walls.Size()
}

// EachWall calls fn once per distinct boundary with its canonical key
func (b *BoundaryIndex) EachWall(fn func(k EdgeKey)) {
	if b == nil {
		return
	}
	b.walls.Each(fn)
}

// EachDoor calls fn once per indexed door
func (b *BoundaryIndex) EachDoor(fn func(d *Door)) {
	if b == nil {
		return
	}
	for _, d := range b.doors {
		fn(d)
	}
}
