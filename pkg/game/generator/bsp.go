package generator

import (
	"fmt"
	"log/slog"
	"math/rand"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

// BSPGenerator splits the map with a binary space partition, puts a room in
// every leaf and joins sibling rooms with L-shaped corridors.
type BSPGenerator struct {
	Cols, Rows int

	// MinNode is the smallest partition that is still split
	MinNode int
	// DoorChance is the chance that a corridor entering a room gets a door
	DoorChance float64
	// CornerChance is the chance that an open room corner is shaped
	CornerChance float64
}

const (
	minRoomSize = 3
	roomPadding = 2
)

var dungeonNames = []string{
	"Crypt", "Catacombs", "Vault", "Undercroft", "Barrow",
	"Ossuary", "Cistern", "Warren", "Keep", "Sepulchre",
}

var dungeonAdjectives = []string{
	"Sunken", "Forgotten", "Flooded", "Silent", "Collapsed",
	"Hollow", "Ashen", "Crooked", "Drowned", "Buried",
}

// NewBSP creates a generator for a cols x rows map
func NewBSP(cols, rows int) *BSPGenerator {
	return &BSPGenerator{
		Cols:         cols,
		Rows:         rows,
		MinNode:      8,
		DoorChance:   0.35,
		CornerChance: 0.5,
	}
}

// Name returns the name of this generator
func (b *BSPGenerator) Name() string {
	return "BSP Tree"
}

type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

type bspRoom struct {
	x, y, width, height int
}

func (r *bspRoom) center() (int, int) {
	return r.x + r.width/2, r.y + r.height/2
}

// Generate builds a dungeon with the viewer placed in the middle of a room
func (b *BSPGenerator) Generate(rng *rand.Rand) *state.Game {
	grid := world.NewGrid(b.Cols, b.Rows)

	// one cell border so the outermost walls have something to face
	root := &bspNode{x: 1, y: 1, width: b.Cols - 2, height: b.Rows - 2}
	b.split(rng, root)
	createRooms(rng, root)
	carveRooms(grid, root)
	connectRooms(rng, grid, root)

	g := state.NewGame(grid)
	g.Name = fmt.Sprintf("%s %s",
		dungeonAdjectives[rng.Intn(len(dungeonAdjectives))],
		dungeonNames[rng.Intn(len(dungeonNames))])

	rooms := collectRooms(root)
	shapeCorners(rng, grid, g.Styles, rooms, b.CornerChance)
	g.Doors = placeDoors(rng, grid, b.DoorChance)
	g.Rebuild()

	if len(rooms) > 0 {
		start := rooms[rng.Intn(len(rooms))]
		x, y := start.center()
		g.SetPose(world.Pose{X: x, Y: y, Facing: world.AllEdges()[rng.Intn(4)]})
	}

	slog.Debug("dungeon generated", "name", g.Name, "rooms", len(rooms), "doors", len(g.Doors),
		"styles", len(g.Styles))
	return g
}

func (b *BSPGenerator) split(rng *rand.Rand, node *bspNode) {
	minSize := b.MinNode
	canV := node.width >= minSize*2
	canH := node.height >= minSize*2

	var horizontal bool
	switch {
	case canV && canH:
		if node.width == node.height {
			horizontal = rng.Intn(2) == 0
		} else {
			horizontal = node.height > node.width
		}
	case canV:
		horizontal = false
	case canH:
		horizontal = true
	default:
		return
	}

	if horizontal {
		at := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	} else {
		at := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	}
	b.split(rng, node.left)
	b.split(rng, node.right)
}

func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}

	maxW := max(node.width-roomPadding, minRoomSize)
	maxH := max(node.height-roomPadding, minRoomSize)
	w := minRoomSize + rng.Intn(maxW-minRoomSize+1)
	h := minRoomSize + rng.Intn(maxH-minRoomSize+1)
	w, h = min(w, node.width), min(h, node.height)

	node.room = &bspRoom{
		x:      node.x + rng.Intn(node.width-w+1),
		y:      node.y + rng.Intn(node.height-h+1),
		width:  w,
		height: h,
	}
}

func carveRooms(grid *world.Grid, node *bspNode) {
	if r := node.room; r != nil {
		for y := r.y; y < r.y+r.height; y++ {
			for x := r.x; x < r.x+r.width; x++ {
				grid.Set(x, y, world.Room)
			}
		}
	}
	if node.left != nil {
		carveRooms(grid, node.left)
	}
	if node.right != nil {
		carveRooms(grid, node.right)
	}
}

func connectRooms(rng *rand.Rand, grid *world.Grid, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	a, b := pickRoom(rng, node.left), pickRoom(rng, node.right)
	if a != nil && b != nil {
		ax, ay := a.center()
		bx, by := b.center()
		if rng.Intn(2) == 0 {
			carveHorizontal(grid, ay, ax, bx)
			carveVertical(grid, bx, ay, by)
		} else {
			carveVertical(grid, ax, ay, by)
			carveHorizontal(grid, by, ax, bx)
		}
	}

	connectRooms(rng, grid, node.left)
	connectRooms(rng, grid, node.right)
}

// carveHorizontal marks empty cells along a row as corridor; rooms it
// crosses keep their state
func carveHorizontal(grid *world.Grid, y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		if grid.At(x, y) == world.Empty {
			grid.Set(x, y, world.Corridor)
		}
	}
}

func carveVertical(grid *world.Grid, x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		if grid.At(x, y) == world.Empty {
			grid.Set(x, y, world.Corridor)
		}
	}
}

func pickRoom(rng *rand.Rand, node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}
	var l, r *bspRoom
	if node.left != nil {
		l = pickRoom(rng, node.left)
	}
	if node.right != nil {
		r = pickRoom(rng, node.right)
	}
	if l != nil && r != nil {
		if rng.Intn(2) == 0 {
			return l
		}
		return r
	}
	if l != nil {
		return l
	}
	return r
}

func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom
	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

// cornerStyles lists, for each room corner, the two edges facing out of the
// room and the diagonal and rounded styles that keep exactly those edges
// solid, leaving the corner open to the rest of the room
var cornerStyles = []struct {
	dx, dy        int
	out           [2]world.Edge
	diag, rounded world.Style
}{
	{0, 0, [2]world.Edge{world.North, world.West}, world.StyleDiag1, world.StyleRound1},
	{1, 0, [2]world.Edge{world.North, world.East}, world.StyleDiag3, world.StyleRound3},
	{0, 1, [2]world.Edge{world.South, world.West}, world.StyleDiag4, world.StyleRound4},
	{1, 1, [2]world.Edge{world.South, world.East}, world.StyleDiag2, world.StyleRound2},
}

// shapeCorners cuts room corners whose two outward neighbours are empty
func shapeCorners(rng *rand.Rand, grid *world.Grid, styles world.StyleMap, rooms []*bspRoom, chance float64) {
	for _, r := range rooms {
		if r.width < minRoomSize || r.height < minRoomSize {
			continue
		}
		for _, c := range cornerStyles {
			x := r.x + c.dx*(r.width-1)
			y := r.y + c.dy*(r.height-1)
			if grid.At(x, y) != world.Room || rng.Float64() >= chance {
				continue
			}
			open := true
			for _, e := range c.out {
				if grid.IsOccupied(world.Neighbor(x, y, e)) {
					open = false
				}
			}
			if !open {
				continue
			}
			s := c.diag
			if rng.Intn(2) == 0 {
				s = c.rounded
			}
			styles[world.Point{X: x, Y: y}] = s
		}
	}
}

// placeDoors puts closed doors where corridor cells meet room cells
func placeDoors(rng *rand.Rand, grid *world.Grid, chance float64) []*world.Door {
	var doors []*world.Door
	grid.ForEachCell(func(x, y int, s world.CellState) {
		if s != world.Corridor {
			return
		}
		for _, e := range world.AllEdges() {
			if grid.At(world.Neighbor(x, y, e)) != world.Room || rng.Float64() >= chance {
				continue
			}
			doors = append(doors, &world.Door{X: x, Y: y, Edge: e, Type: "wood"})
		}
	})
	return doors
}
