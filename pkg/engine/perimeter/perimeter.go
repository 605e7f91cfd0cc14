// Package perimeter derives impassable wall segments from an occupancy grid
// and per-cell shape tags.
//
// A shared edge between two occupied cells stays open only when the
// neighbor's coverage on the same compass edge contains this cell's
// coverage. Shaped cells therefore produce walls against neighbors that
// leave that side open even though both cells are occupied.
package perimeter

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"crawlview/pkg/engine/world"
)

// Options tune the derivation
type Options struct {
	// Fallback emits plain boundary walls for a region that would
	// otherwise have none, so an enclosed shaped room is never wall-less.
	Fallback bool
}

// Region is one connected set of same-state cells and its derived walls
type Region struct {
	Cells     []world.Point
	Perimeter []world.WallSegment
	// Decor holds one decorative segment per shaped cell; never used for collision
	Decor []world.WallSegment
}

// Result is the union of every region's derivation
type Result struct {
	Regions []Region
	Walls   []world.WallSegment
	Decor   []world.WallSegment
}

// BuildRegion flood-fills from seed and derives the region's perimeter.
// Room seeds only ever merge room cells; corridor seeds merge corridor cells.
// An unoccupied or out-of-range seed yields an empty region.
func BuildRegion(g *world.Grid, styles world.StyleMap, seed world.Point, opts Options) Region {
	visited := mapset.New[world.Point]()
	return buildRegion(g, styles, seed, opts, &visited)
}

func buildRegion(g *world.Grid, styles world.StyleMap, seed world.Point, opts Options, visited *mapset.Set[world.Point]) Region {
	var region Region
	if !g.IsOccupied(seed.X, seed.Y) || visited.Has(seed) {
		return region
	}
	class := g.At(seed.X, seed.Y)

	q := queue.New[world.Point]()
	q.Enqueue(seed)
	visited.Put(seed)

	for !q.Empty() {
		p := q.Dequeue()
		region.Cells = append(region.Cells, p)

		for _, e := range world.AllEdges() {
			nx, ny := world.Neighbor(p.X, p.Y, e)
			n := world.Point{X: nx, Y: ny}
			if g.At(nx, ny) != class || visited.Has(n) {
				continue
			}
			visited.Put(n)
			q.Enqueue(n)
		}
	}

	for _, p := range region.Cells {
		region.Perimeter = append(region.Perimeter, cellWalls(g, styles, p)...)
		if s := styles.Effective(g, p.X, p.Y); s.IsShaped() {
			region.Decor = append(region.Decor, world.WallSegment{X: p.X, Y: p.Y, Decor: s})
		}
	}

	if opts.Fallback && len(region.Perimeter) == 0 {
		for _, p := range region.Cells {
			region.Perimeter = append(region.Perimeter, boundaryWalls(g, p)...)
		}
	}

	return region
}

// cellWalls applies the coverage containment test to each covered edge of p
func cellWalls(g *world.Grid, styles world.StyleMap, p world.Point) []world.WallSegment {
	var walls []world.WallSegment
	style := styles.Effective(g, p.X, p.Y)

	for _, e := range world.AllEdges() {
		own := world.Coverage(style, e)
		if own.IsEmpty() {
			continue
		}
		nx, ny := world.Neighbor(p.X, p.Y, e)
		if !g.IsOccupied(nx, ny) {
			walls = append(walls, world.WallSegment{X: p.X, Y: p.Y, Edge: e})
			continue
		}
		theirs := world.Coverage(styles.Effective(g, nx, ny), e)
		if !theirs.Contains(own) {
			walls = append(walls, world.WallSegment{X: p.X, Y: p.Y, Edge: e})
		}
	}
	return walls
}

// boundaryWalls emits a wall on every edge of p facing out of the grid or into empty space
func boundaryWalls(g *world.Grid, p world.Point) []world.WallSegment {
	var walls []world.WallSegment
	for _, e := range world.AllEdges() {
		nx, ny := world.Neighbor(p.X, p.Y, e)
		if !g.IsOccupied(nx, ny) {
			walls = append(walls, world.WallSegment{X: p.X, Y: p.Y, Edge: e})
		}
	}
	return walls
}

// BuildAllPerimeters seeds a region at every unvisited occupied cell in
// raster order and unions the results, dropping identical (x,y,edge) triples.
func BuildAllPerimeters(g *world.Grid, styles world.StyleMap, opts Options) Result {
	var res Result
	visited := mapset.New[world.Point]()
	seen := mapset.New[world.EdgeKey]()

	g.ForEachCell(func(x, y int, s world.CellState) {
		p := world.Point{X: x, Y: y}
		if !g.IsOccupied(x, y) || visited.Has(p) {
			return
		}
		region := buildRegion(g, styles, p, opts, &visited)
		res.Regions = append(res.Regions, region)

		for _, w := range region.Perimeter {
			if seen.Has(w.Key()) {
				continue
			}
			seen.Put(w.Key())
			res.Walls = append(res.Walls, w)
		}
		res.Decor = append(res.Decor, region.Decor...)
	})

	return res
}
