package view_test

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/renderer/raster"
	"crawlview/pkg/game/state"
	"crawlview/pkg/game/view"
)

// gameFromRows builds a game from '#' room, '=' corridor, '.' empty rows.
func gameFromRows(t *testing.T, rows ...string) *state.Game {
	t.Helper()
	cells := make([][]world.CellState, len(rows))
	for y, row := range rows {
		cells[y] = make([]world.CellState, len(row))
		for x, ch := range row {
			switch ch {
			case '#':
				cells[y][x] = world.Room
			case '=':
				cells[y][x] = world.Corridor
			}
		}
	}
	return state.NewGame(world.GridFromRows(cells))
}

func solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var tileColors = map[view.TileID]color.RGBA{
	view.TileFloorClose:     {10, 0, 0, 255},
	view.TileFloorFar:       {20, 0, 0, 255},
	view.TileCeilingClose:   {0, 10, 0, 255},
	view.TileCeilingFar:     {0, 20, 0, 255},
	view.TileWallFront:      {200, 100, 50, 255},
	view.TileWallSide:       {100, 100, 100, 255},
	view.TileNarrowCorridor: {90, 90, 90, 255},
	view.TileBackdrop:       {0, 0, 40, 255},
	view.TileDoor:           {150, 80, 20, 255},
	view.TileDoorLocked:     {160, 160, 170, 255},
	view.TileDoorSide:       {120, 60, 10, 255},
	view.TileGlow:           {40, 30, 0, 64},
}

func solidAtlas(skip ...view.TileID) *view.Atlas {
	a := view.NewAtlas()
	for id, c := range tileColors {
		if !slices.Contains(skip, id) {
			a.Set(id, solid(c))
		}
	}
	return a
}

func tiles(draws []view.Draw) []view.TileID {
	out := make([]view.TileID, len(draws))
	for i, d := range draws {
		out[i] = d.Tile
	}
	return out
}

func TestPlan_CorridorEndsInWall(t *testing.T) {
	g := gameFromRows(t, ".=.", ".=.", ".=.", ".=.")
	scene := view.NewScene(solidAtlas())
	plan := scene.Plan(400, 300, g.Resolver, world.Pose{X: 1, Y: 3, Facing: world.North})

	if plan.VisibleDepth != 3 || plan.Backdrop {
		t.Fatalf("VisibleDepth = %d backdrop=%v, want 3 false", plan.VisibleDepth, plan.Backdrop)
	}
	want := []view.TileID{
		view.TileWallFront,
		view.TileWallSide, view.TileWallSide,
		view.TileNarrowCorridor, view.TileNarrowCorridor,
	}
	if got := tiles(plan.Walls); !slices.Equal(got, want) {
		t.Fatalf("walls = %v, want %v", got, want)
	}
	if plan.Walls[0].Dst != plan.Frames[3] {
		t.Errorf("front wall at %+v, want frame 3 %+v", plan.Walls[0].Dst, plan.Frames[3])
	}
	// one band pair per cell stepped through
	if len(plan.Bands) != 6 {
		t.Errorf("len(Bands) = %d, want 6", len(plan.Bands))
	}
}

func TestPlan_WalkOrder(t *testing.T) {
	cases := []struct {
		name  string
		rows  []string
		doors []*world.Door
		pose  world.Pose
		depth int
		walls []view.TileID
	}{
		{
			name:  "blocked at once",
			rows:  []string{"#"},
			pose:  world.Pose{X: 0, Y: 0, Facing: world.North},
			depth: 0,
			walls: []view.TileID{view.TileWallFront},
		},
		{
			name:  "blocked at depth 2",
			rows:  []string{"#", "#", "#"},
			pose:  world.Pose{X: 0, Y: 2, Facing: world.North},
			depth: 2,
			walls: []view.TileID{view.TileWallFront, view.TileWallSide, view.TileWallSide, view.TileNarrowCorridor},
		},
		{
			name:  "door at depth 1",
			rows:  []string{"#", "#", "#"},
			doors: []*world.Door{{X: 0, Y: 0, Edge: world.South}},
			pose:  world.Pose{X: 0, Y: 2, Facing: world.North},
			depth: 1,
			walls: []view.TileID{view.TileDoor, view.TileDoor, view.TileWallSide, view.TileWallSide},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gameFromRows(t, c.rows...)
			if c.doors != nil {
				g.Doors = c.doors
				g.Rebuild()
			}
			plan := view.NewScene(nil).Plan(200, 100, g.Resolver, c.pose)

			if plan.VisibleDepth != c.depth {
				t.Fatalf("VisibleDepth = %d, want %d", plan.VisibleDepth, c.depth)
			}
			if got := tiles(plan.Walls); !slices.Equal(got, c.walls) {
				t.Fatalf("walls = %v, want %v", got, c.walls)
			}

			stop := plan.Frames[c.depth]
			if c.walls[0] == view.TileWallFront && plan.Walls[0].Dst != stop {
				t.Errorf("front wall at %+v, want %+v", plan.Walls[0].Dst, stop)
			}
			if c.walls[0] == view.TileDoor {
				if plan.Walls[0].Dst != stop.RightHalf() || plan.Walls[1].Dst != stop.LeftHalf() {
					t.Errorf("door halves at %+v %+v, want halves of %+v", plan.Walls[0].Dst, plan.Walls[1].Dst, stop)
				}
			}

			// sides are only drawn for cells stepped into before the stop
			for _, d := range plan.Walls {
				if (d.Tile == view.TileWallSide || d.Tile == view.TileDoorSide) && d.Dst.Y0 >= stop.Y0 {
					t.Errorf("side wall %+v drawn at the stopping depth", d.Dst)
				}
			}
			if len(plan.Bands) != 2*c.depth {
				t.Errorf("len(Bands) = %d, want %d", len(plan.Bands), 2*c.depth)
			}
		})
	}
}

func TestPlan_OuterFill(t *testing.T) {
	g := gameFromRows(t, "#", "#")
	plan := view.NewScene(nil).Plan(200, 100, g.Resolver, world.Pose{X: 0, Y: 1, Facing: world.North})

	want := []view.Draw{
		{Tile: view.TileCeilingClose, Part: view.Whole, Dst: view.Rect{X0: 0, Y0: 0, X1: 200, Y1: 50}},
		{Tile: view.TileFloorClose, Part: view.Whole, Dst: view.Rect{X0: 0, Y0: 50, X1: 200, Y1: 100}},
	}
	if !slices.Equal(plan.Fill, want) {
		t.Errorf("Fill = %+v, want %+v", plan.Fill, want)
	}
	// the fill is separate from the per-depth bands
	if len(plan.Bands) != 2 || plan.Bands[0].Dst == plan.Fill[0].Dst {
		t.Errorf("Bands = %+v", plan.Bands)
	}
}

func TestPlan_SideWallsSpanBetweenFrames(t *testing.T) {
	g := gameFromRows(t, "#", "#")
	plan := view.NewScene(nil).Plan(200, 100, g.Resolver, world.Pose{X: 0, Y: 1, Facing: world.North})

	outer, inner := plan.Frames[0], plan.Frames[1]
	var left, right *view.Draw
	for i := range plan.Walls {
		if plan.Walls[i].Tile != view.TileWallSide {
			continue
		}
		switch plan.Walls[i].Part {
		case view.LeftPart:
			left = &plan.Walls[i]
		case view.RightPart:
			right = &plan.Walls[i]
		}
	}
	if left == nil || right == nil {
		t.Fatalf("missing side walls: %+v", plan.Walls)
	}
	if left.Dst != (view.Rect{X0: outer.X0, Y0: outer.Y0, X1: inner.X0, Y1: outer.Y1}) {
		t.Errorf("left wall = %+v", left.Dst)
	}
	if right.Dst != (view.Rect{X0: inner.X1, Y0: outer.Y0, X1: outer.X1, Y1: outer.Y1}) {
		t.Errorf("right wall = %+v", right.Dst)
	}
	if plan.VisibleDepth != 1 || plan.Walls[0].Dst != inner {
		t.Errorf("VisibleDepth = %d front = %+v, want 1 at %+v", plan.VisibleDepth, plan.Walls[0].Dst, inner)
	}
}

func TestPlan_OpenRunDrawsBackdrop(t *testing.T) {
	g := gameFromRows(t, "#", "#", "#", "#", "#", "#", "#")
	plan := view.NewScene(nil).Plan(300, 300, g.Resolver, world.Pose{X: 0, Y: 6, Facing: world.North})
	if !plan.Backdrop || plan.VisibleDepth != view.DefaultDepth {
		t.Fatalf("backdrop=%v depth=%d", plan.Backdrop, plan.VisibleDepth)
	}
	if plan.Walls[0].Tile != view.TileBackdrop || plan.Walls[0].Dst != plan.Frames[view.DefaultDepth] {
		t.Errorf("first wall = %+v, want backdrop at last frame", plan.Walls[0])
	}
	if len(plan.Bands) != 2*view.DefaultDepth {
		t.Errorf("len(Bands) = %d", len(plan.Bands))
	}
	if plan.Bands[0].Tile != view.TileCeilingClose || plan.Bands[2].Tile != view.TileCeilingFar {
		t.Errorf("band buckets = %v", tiles(plan.Bands))
	}
}

func TestPlan_Doors(t *testing.T) {
	cases := []struct {
		name   string
		door   world.Door
		want   view.TileID
		depth  int
		halves bool
	}{
		{"closed", world.Door{X: 0, Y: 1, Edge: world.North}, view.TileDoor, 0, true},
		{"locked", world.Door{X: 0, Y: 1, Edge: world.North, Locked: true, Opened: true}, view.TileDoorLocked, 0, true},
		{"open", world.Door{X: 0, Y: 1, Edge: world.North, Opened: true}, view.TileWallFront, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gameFromRows(t, "#", "#")
			d := c.door
			g.Doors = []*world.Door{&d}
			g.Rebuild()
			plan := view.NewScene(nil).Plan(200, 200, g.Resolver, world.Pose{X: 0, Y: 1, Facing: world.North})

			if plan.VisibleDepth != c.depth {
				t.Errorf("VisibleDepth = %d, want %d", plan.VisibleDepth, c.depth)
			}
			frame := plan.Frames[c.depth]
			if c.halves {
				if plan.Walls[0].Tile != c.want || plan.Walls[0].Dst != frame.RightHalf() || plan.Walls[0].Part != view.RightPart {
					t.Errorf("walls[0] = %+v", plan.Walls[0])
				}
				if plan.Walls[1].Tile != c.want || plan.Walls[1].Dst != frame.LeftHalf() || plan.Walls[1].Part != view.LeftPart {
					t.Errorf("walls[1] = %+v", plan.Walls[1])
				}
			} else if plan.Walls[0].Tile != c.want || plan.Walls[0].Dst != frame {
				t.Errorf("walls[0] = %+v, want %v at %+v", plan.Walls[0], c.want, frame)
			}
		})
	}
}

func TestPlan_SideDoor(t *testing.T) {
	g := gameFromRows(t, "##", "#.")
	g.Doors = []*world.Door{{X: 1, Y: 0, Edge: world.West}}
	g.Rebuild()
	plan := view.NewScene(nil).Plan(200, 200, g.Resolver, world.Pose{X: 0, Y: 1, Facing: world.North})

	found := false
	for _, d := range plan.Walls {
		if d.Tile == view.TileDoorSide && d.Part == view.RightPart {
			found = true
		}
	}
	if !found {
		t.Errorf("no right side door in %v", tiles(plan.Walls))
	}
}

func TestPlan_AuthoredWallStopsWalkIntoWalkableCell(t *testing.T) {
	g := gameFromRows(t, "#", "#")
	g.AuthoredWalls = []world.WallSegment{{X: 0, Y: 0, Edge: world.South}}
	g.Rebuild()
	plan := view.NewScene(nil).Plan(200, 200, g.Resolver, world.Pose{X: 0, Y: 1, Facing: world.North})
	if plan.VisibleDepth != 0 || plan.Walls[0].Tile != view.TileWallFront {
		t.Errorf("depth=%d walls=%v", plan.VisibleDepth, tiles(plan.Walls))
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2 && d(a.A, b.A) <= 2
}

func TestRender_FrontWallPixels(t *testing.T) {
	g := gameFromRows(t, "#", "#")
	g.SetPose(world.Pose{X: 0, Y: 1, Facing: world.North})
	c := raster.New(100, 100)
	view.NewScene(solidAtlas()).Render(c, g.Resolver, g.Pose, false)

	if got := c.Image().RGBAAt(50, 50); !near(got, tileColors[view.TileWallFront]) {
		t.Errorf("centre pixel = %v, want front wall %v", got, tileColors[view.TileWallFront])
	}
	if got := c.Image().RGBAAt(2, 50); !near(got, tileColors[view.TileWallSide]) {
		t.Errorf("left edge pixel = %v, want side wall %v", got, tileColors[view.TileWallSide])
	}
}

func TestRender_MissingTextureIsSkipped(t *testing.T) {
	g := gameFromRows(t, "#")
	g.SetPose(world.Pose{X: 0, Y: 0, Facing: world.North})
	c := raster.New(100, 100)
	view.NewScene(solidAtlas(view.TileWallFront, view.TileCeilingClose, view.TileFloorClose)).Render(c, g.Resolver, g.Pose, false)

	if got := c.Image().RGBAAt(50, 50); got != view.BackgroundColor {
		t.Errorf("centre pixel = %v, want background", got)
	}
}

func TestRender_LightGlow(t *testing.T) {
	g := gameFromRows(t, "#")
	g.SetPose(world.Pose{X: 0, Y: 0, Facing: world.North})
	scene := view.NewScene(solidAtlas())

	dark, lit := raster.New(60, 60), raster.New(60, 60)
	scene.Render(dark, g.Resolver, g.Pose, false)
	scene.Render(lit, g.Resolver, g.Pose, true)
	if dark.Image().RGBAAt(30, 30) == lit.Image().RGBAAt(30, 30) {
		t.Error("light overlay did not change the scene")
	}
}

func TestRender_NoPoseDrawsPrompt(t *testing.T) {
	g := gameFromRows(t, "#")
	c := raster.New(200, 60)
	view.NewScene(solidAtlas()).Render(c, g.Resolver, nil, false)

	img := c.Image()
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("placeholder prompt drew nothing")
	}
}

func TestMinimap_DrawsViewer(t *testing.T) {
	g := gameFromRows(t, ".=.", ".=.", ".=.", ".=.")
	g.SetPose(world.Pose{X: 1, Y: 3, Facing: world.North})
	c := raster.New(200, 200)
	c.Fill(view.BackgroundColor)
	view.NewMinimap().Draw(c, g)

	// 15px cells anchored 8px from the top-right corner
	want := color.RGBA{0x40, 0xe0, 0x60, 0xff}
	if got := c.Image().RGBAAt(169, 60); got != want {
		t.Errorf("viewer pixel = %v, want %v", got, want)
	}
}
