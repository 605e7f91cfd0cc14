// Package generator tests BSP dungeon generation: connectivity, determinism,
// shaped corners and door placement.
package generator

import (
	"math/rand"
	"testing"

	"github.com/zyedidia/generic/queue"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

// reachable counts walkable cells reachable from the viewer through the grid
func reachable(g *state.Game) int {
	start := world.Point{X: g.Pose.X, Y: g.Pose.Y}
	seen := map[world.Point]bool{start: true}
	q := queue.New[world.Point]()
	q.Enqueue(start)
	for !q.Empty() {
		p := q.Dequeue()
		for _, e := range world.AllEdges() {
			nx, ny := world.Neighbor(p.X, p.Y, e)
			n := world.Point{X: nx, Y: ny}
			if !seen[n] && g.Grid.IsOccupied(nx, ny) {
				seen[n] = true
				q.Enqueue(n)
			}
		}
	}
	return len(seen)
}

func occupied(g *state.Game) int {
	n := 0
	g.Grid.ForEachCell(func(_, _ int, s world.CellState) {
		if s != world.Empty {
			n++
		}
	})
	return n
}

func TestBSPGenerate_Connected(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := FromSeed(seed)
		if g.Pose == nil {
			t.Fatalf("seed %d: no start pose", seed)
		}
		if !g.Grid.IsOccupied(g.Pose.X, g.Pose.Y) {
			t.Fatalf("seed %d: start %v is not walkable", seed, *g.Pose)
		}
		if got, want := reachable(g), occupied(g); got != want {
			t.Errorf("seed %d: %d of %d cells reachable", seed, got, want)
		}
	}
}

func TestBSPGenerate_Deterministic(t *testing.T) {
	a, b := FromSeed(42), FromSeed(42)
	if a.Name != b.Name || *a.Pose != *b.Pose || len(a.Doors) != len(b.Doors) {
		t.Fatal("same seed produced different dungeons")
	}
	for y := 0; y < a.Grid.Rows(); y++ {
		for x := 0; x < a.Grid.Cols(); x++ {
			if a.Grid.At(x, y) != b.Grid.At(x, y) {
				t.Fatalf("cell %d,%d differs", x, y)
			}
		}
	}
}

func TestBSPGenerate_BorderStaysEmpty(t *testing.T) {
	g := FromSeed(7)
	cols, rows := g.Grid.Cols(), g.Grid.Rows()
	for x := 0; x < cols; x++ {
		if g.Grid.IsOccupied(x, 0) || g.Grid.IsOccupied(x, rows-1) {
			t.Errorf("border cell in column %d is occupied", x)
		}
	}
	for y := 0; y < rows; y++ {
		if g.Grid.IsOccupied(0, y) || g.Grid.IsOccupied(cols-1, y) {
			t.Errorf("border cell in row %d is occupied", y)
		}
	}
}

func TestBSPGenerate_ShapedCornersFaceOutward(t *testing.T) {
	gen := NewBSP(40, 24)
	gen.CornerChance = 1
	g := gen.Generate(rand.New(rand.NewSource(3)))
	if len(g.Styles) == 0 {
		t.Fatal("no shaped corners with CornerChance 1")
	}
	for p, s := range g.Styles {
		if g.Grid.At(p.X, p.Y) != world.Room {
			t.Errorf("style %s on non-room cell %v", s, p)
		}
		for _, e := range world.AllEdges() {
			solid := world.Coverage(s, e) == world.Solid
			occupied := g.Grid.IsOccupied(world.Neighbor(p.X, p.Y, e))
			if solid && occupied {
				t.Errorf("solid edge %s of %v faces into the room", e, p)
			}
			if !solid && !occupied {
				t.Errorf("cut edge %s of %v faces out of the room", e, p)
			}
		}
	}
}

func TestBSPGenerate_ShapedCornersAreReachable(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		gen := NewBSP(40, 24)
		gen.CornerChance = 1
		g := gen.Generate(rand.New(rand.NewSource(seed)))

		for p, s := range g.Styles {
			entered := false
			for _, e := range world.AllEdges() {
				nx, ny := world.Neighbor(p.X, p.Y, e)
				if g.Grid.IsOccupied(nx, ny) && g.Resolver.CanStep(nx, ny, e.Opposite()) {
					entered = true
				}
			}
			if !entered {
				t.Errorf("seed %d: %s corner %v cannot be entered from any neighbour", seed, s, p)
			}
		}
	}
}

func TestBSPGenerate_DoorsJoinCorridorsToRooms(t *testing.T) {
	gen := NewBSP(40, 24)
	gen.DoorChance = 1
	g := gen.Generate(rand.New(rand.NewSource(5)))
	if len(g.Doors) == 0 {
		t.Fatal("no doors with DoorChance 1")
	}
	for _, d := range g.Doors {
		if g.Grid.At(d.X, d.Y) != world.Corridor {
			t.Errorf("door %v not on a corridor cell", d.Key())
		}
		if g.Grid.At(world.Neighbor(d.X, d.Y, d.Edge)) != world.Room {
			t.Errorf("door %v does not lead into a room", d.Key())
		}
		if d.Locked || d.Opened {
			t.Errorf("door %v should start closed and unlocked", d.Key())
		}
		if g.Index.DoorAt(d.X, d.Y, d.Edge) != d {
			t.Errorf("door %v missing from the boundary index", d.Key())
		}
	}
}

func TestBSPGenerate_RoundTrips(t *testing.T) {
	g := FromSeed(9)
	round, err := g.Encode().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(round.Perimeter.Walls) != len(g.Perimeter.Walls) {
		t.Errorf("walls = %d after round trip, want %d", len(round.Perimeter.Walls), len(g.Perimeter.Walls))
	}
}
