package view

import (
	"image"
	"image/color"

	"github.com/leonelquinteros/gotext"

	"crawlview/pkg/engine/geometry"
	"crawlview/pkg/engine/world"
)

// Part selects which slice of a texture a draw uses
type Part int

const (
	Whole Part = iota
	LeftPart
	RightPart
)

// Draw is one textured quad of a planned scene
type Draw struct {
	Tile TileID
	Part Part
	Dst  Rect
}

// Plan is everything needed to paint one pose, in paint order
type Plan struct {
	// Frames[d] is the plane of the forward edge of the cell d steps ahead;
	// Frames[0] is the viewport
	Frames []Rect
	// Fill is the outer ceiling and floor fill under everything else
	Fill []Draw
	// Bands are floor and ceiling strips between successive frames, nearest
	// first
	Bands []Draw
	// Walls are wall, door and backdrop quads, farthest first
	Walls []Draw
	// VisibleDepth is the depth at which the walk stopped, or Depth when the
	// walk ran out and a backdrop was drawn
	VisibleDepth int
	Backdrop     bool
}

// Scene renders the first-person view of a pose
type Scene struct {
	Tiles TileSource
	Depth int
	Inset float64
	// Prompt is drawn when there is no pose to render
	Prompt string
}

// NewScene creates a scene with the default depth and inset
func NewScene(tiles TileSource) *Scene {
	return &Scene{
		Tiles:  tiles,
		Depth:  DefaultDepth,
		Inset:  DefaultInset,
		Prompt: gotext.Get("PROMPT_PLACE_PARTY"),
	}
}

// Plan walks forward from pose and lays out every quad for a w by h canvas.
//
// At depth d the edge ahead is checked first. A blocked edge puts the front
// wall (or a door's two halves) on Frames[d] and ends the walk. Otherwise the
// walk steps into the next cell and its sides are drawn between Frames[d]
// and Frames[d+1].
func (s *Scene) Plan(w, h int, res *geometry.Resolver, pose world.Pose) Plan {
	frames := Frames(w, h, s.Depth, s.Inset)
	vp := frames[0]
	mid := (vp.Y0 + vp.Y1) / 2
	p := Plan{
		Frames:       frames,
		VisibleDepth: s.Depth,
		Fill: []Draw{
			{Tile: TileCeilingClose, Part: Whole, Dst: Rect{vp.X0, vp.Y0, vp.X1, mid}},
			{Tile: TileFloorClose, Part: Whole, Dst: Rect{vp.X0, mid, vp.X1, vp.Y1}},
		},
	}

	var near []Draw
	x, y := pose.X, pose.Y
	fwd, left, right := pose.Facing, pose.Left(), pose.Right()

	for d := 0; d < s.Depth; d++ {
		ahead, open := forwardInfo(res, x, y, fwd)
		if !open {
			frame := frames[d]
			if ahead.Door != nil && !ahead.Door.Passable() {
				tile := TileDoor
				if ahead.Door.Locked {
					tile = TileDoorLocked
				}
				near = append(near,
					Draw{Tile: tile, Part: LeftPart, Dst: frame.LeftHalf()},
					Draw{Tile: tile, Part: RightPart, Dst: frame.RightHalf()},
				)
			} else {
				near = append(near, Draw{Tile: TileWallFront, Part: Whole, Dst: frame})
			}
			p.VisibleDepth = d
			break
		}

		x, y = world.Neighbor(x, y, fwd)
		outer, inner := frames[d], frames[d+1]

		lInfo, lBlocked := sideInfo(res, x, y, left)
		rInfo, rBlocked := sideInfo(res, x, y, right)
		_, beyond := forwardInfo(res, x, y, fwd)

		if lBlocked && rBlocked && beyond {
			near = append(near, Draw{Tile: TileNarrowCorridor, Part: Whole, Dst: outer})
			continue
		}
		if lBlocked {
			near = append(near, Draw{
				Tile: sideTile(lInfo),
				Part: LeftPart,
				Dst:  Rect{outer.X0, outer.Y0, inner.X0, outer.Y1},
			})
		}
		if rBlocked {
			near = append(near, Draw{
				Tile: sideTile(rInfo),
				Part: RightPart,
				Dst:  Rect{inner.X1, outer.Y0, outer.X1, outer.Y1},
			})
		}
	}

	if p.VisibleDepth == s.Depth {
		p.Backdrop = true
		near = append(near, Draw{Tile: TileBackdrop, Part: Whole, Dst: frames[s.Depth]})
	}

	for d := 0; d < p.VisibleDepth; d++ {
		outer, inner := frames[d], frames[d+1]
		ceil, floor := TileCeilingFar, TileFloorFar
		if d == 0 {
			ceil, floor = TileCeilingClose, TileFloorClose
		}
		p.Bands = append(p.Bands,
			Draw{Tile: ceil, Part: Whole, Dst: Rect{outer.X0, outer.Y0, outer.X1, inner.Y0}},
			Draw{Tile: floor, Part: Whole, Dst: Rect{outer.X0, inner.Y1, outer.X1, outer.Y1}},
		)
	}

	p.Walls = make([]Draw, len(near))
	for i, d := range near {
		p.Walls[len(near)-1-i] = d
	}
	return p
}

// forwardInfo reports the edge ahead of the cell and whether the walk can
// continue through it.
func forwardInfo(res *geometry.Resolver, x, y int, e world.Edge) (geometry.EdgeInfo, bool) {
	info := res.EdgeInfo(x, y, e)
	if info.Blocked {
		return info, false
	}
	nx, ny := world.Neighbor(x, y, e)
	return info, res.IsWalkable(nx, ny)
}

// sideInfo reports whether a side of the cell is closed, either by the
// boundary itself or by an unwalkable neighbour.
func sideInfo(res *geometry.Resolver, x, y int, e world.Edge) (geometry.EdgeInfo, bool) {
	info := res.EdgeInfo(x, y, e)
	if info.Blocked {
		return info, true
	}
	nx, ny := world.Neighbor(x, y, e)
	return info, !res.IsWalkable(nx, ny)
}

func sideTile(info geometry.EdgeInfo) TileID {
	if info.Door != nil && !info.Door.Passable() {
		return TileDoorSide
	}
	return TileWallSide
}

// Render paints pose onto c. A nil pose draws the placeholder prompt.
func (s *Scene) Render(c Canvas, res *geometry.Resolver, pose *world.Pose, light bool) {
	w, h := c.Size()
	c.Fill(BackgroundColor)

	if pose == nil || res == nil {
		tx := w/2 - len(s.Prompt)*7/2
		if tx < 0 {
			tx = 0
		}
		c.DrawText(s.Prompt, tx, h/2-6, color.White)
		return
	}

	plan := s.Plan(w, h, res, *pose)
	for _, d := range plan.Fill {
		s.draw(c, d)
	}
	for _, d := range plan.Bands {
		s.draw(c, d)
	}
	for _, d := range plan.Walls {
		s.draw(c, d)
	}
	if light {
		s.draw(c, Draw{Tile: TileGlow, Part: Whole, Dst: Rect{0, 0, float64(w), float64(h)}})
	}
}

func (s *Scene) draw(c Canvas, d Draw) {
	if d.Dst.Empty() || s.Tiles == nil {
		return
	}
	img, ok := s.Tiles.Tile(d.Tile)
	if !ok || img == nil {
		return
	}
	c.DrawImage(img, partRect(img.Bounds(), d.Part), d.Dst)
}

func partRect(b image.Rectangle, p Part) image.Rectangle {
	mid := b.Min.X + b.Dx()/2
	switch p {
	case LeftPart:
		return image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y)
	case RightPart:
		return image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y)
	default:
		return b
	}
}
