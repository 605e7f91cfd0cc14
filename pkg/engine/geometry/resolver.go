// Package geometry answers walkability and edge-passability questions for
// the viewer against a grid, its derived and authored walls, and its doors.
package geometry

import (
	"crawlview/pkg/engine/world"
)

// EdgeInfo describes what sits on one side of a cell
type EdgeInfo struct {
	Blocked bool
	Wall    bool
	// Door is the door on the boundary, if any. A blocking door is reported
	// with Wall=false.
	Door *world.Door
}

// Resolver answers queries against one snapshot of dungeon geometry
type Resolver struct {
	grid  *world.Grid
	index *world.BoundaryIndex
}

// NewResolver builds a resolver over the grid and a boundary index
func NewResolver(g *world.Grid, index *world.BoundaryIndex) *Resolver {
	return &Resolver{grid: g, index: index}
}

// Grid returns the grid the resolver reads
func (r *Resolver) Grid() *world.Grid {
	return r.grid
}

// Index returns the shared boundary index
func (r *Resolver) Index() *world.BoundaryIndex {
	return r.index
}

// IsWalkable is true for in-bounds room and corridor cells
func (r *Resolver) IsWalkable(x, y int) bool {
	return r.grid.IsOccupied(x, y)
}

// EdgeInfo resolves edge e of cell x/y. Walls win over doors; a door blocks
// unless it is unlocked and opened.
func (r *Resolver) EdgeInfo(x, y int, e world.Edge) EdgeInfo {
	nx, ny := world.Neighbor(x, y, e)
	if !r.grid.InBounds(nx, ny) {
		return EdgeInfo{Blocked: true, Wall: true}
	}

	if r.index.HasWall(x, y, e) {
		return EdgeInfo{Blocked: true, Wall: true}
	}

	door := r.index.DoorAt(x, y, e)
	if door != nil && !door.Passable() {
		return EdgeInfo{Blocked: true, Door: door}
	}

	return EdgeInfo{Door: door}
}

// CanStep reports whether the viewer at x/y may cross edge e: the edge must
// be open and the destination walkable.
func (r *Resolver) CanStep(x, y int, e world.Edge) bool {
	if r.EdgeInfo(x, y, e).Blocked {
		return false
	}
	nx, ny := world.Neighbor(x, y, e)
	return r.IsWalkable(nx, ny)
}
