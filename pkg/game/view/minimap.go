package view

import (
	"image/color"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

var (
	colorMapBack   = color.RGBA{0x00, 0x00, 0x00, 0xb0}
	colorMapRoom   = color.RGBA{0x55, 0x50, 0x48, 0xff}
	colorMapCorr   = color.RGBA{0x40, 0x44, 0x4c, 0xff}
	colorMapWall   = color.RGBA{0xd8, 0xd0, 0xc0, 0xff}
	colorMapDoor   = color.RGBA{0xc0, 0x80, 0x30, 0xff}
	colorMapLocked = color.RGBA{0xc0, 0x30, 0x30, 0xff}
	colorMapDecor  = color.RGBA{0x90, 0x88, 0x78, 0xff}
	colorMapViewer = color.RGBA{0x40, 0xe0, 0x60, 0xff}
)

// Minimap draws a top-down overlay of the discovered cells in a corner of
// the canvas. Walls and doors come from the same boundary index the
// resolver uses.
type Minimap struct {
	// MaxShare bounds the overlay to this share of the canvas short side
	MaxShare float64
	Margin   int
}

// NewMinimap creates a minimap with default placement
func NewMinimap() *Minimap {
	return &Minimap{MaxShare: 0.3, Margin: 8}
}

// CellSize returns the pixel size of one map cell on a w by h canvas
func (m *Minimap) CellSize(w, h int, g *state.Game) int {
	short := min(w, h)
	span := max(g.Grid.Cols(), g.Grid.Rows())
	if span == 0 {
		return 0
	}
	cs := int(float64(short)*m.MaxShare) / span
	return max(cs, 2)
}

// Draw paints the overlay in the top-right corner
func (m *Minimap) Draw(c Canvas, g *state.Game) {
	if g == nil || g.Grid == nil {
		return
	}
	w, h := c.Size()
	cs := m.CellSize(w, h, g)
	if cs == 0 {
		return
	}
	cols, rows := g.Grid.Cols(), g.Grid.Rows()
	ox := float64(w - m.Margin - cols*cs)
	oy := float64(m.Margin)
	fcs := float64(cs)

	cell := func(x, y int) Rect {
		return Rect{ox + float64(x)*fcs, oy + float64(y)*fcs, ox + float64(x+1)*fcs, oy + float64(y+1)*fcs}
	}

	c.FillRect(Rect{ox - 2, oy - 2, ox + float64(cols)*fcs + 2, oy + float64(rows)*fcs + 2}, colorMapBack)

	g.Grid.ForEachCell(func(x, y int, s world.CellState) {
		if s == world.Empty || !g.IsDiscovered(x, y) {
			return
		}
		col := colorMapRoom
		if s == world.Corridor {
			col = colorMapCorr
		}
		c.FillRect(cell(x, y), col)
	})

	line := max(fcs/8, 1)
	edge := func(k world.EdgeKey) Rect {
		r := cell(k.X, k.Y)
		switch k.Edge {
		case world.North:
			return Rect{r.X0, r.Y0, r.X1, r.Y0 + line}
		case world.South:
			return Rect{r.X0, r.Y1 - line, r.X1, r.Y1}
		case world.West:
			return Rect{r.X0, r.Y0, r.X0 + line, r.Y1}
		default:
			return Rect{r.X1 - line, r.Y0, r.X1, r.Y1}
		}
	}
	seen := func(k world.EdgeKey) bool {
		o := k.Mirror()
		return g.IsDiscovered(k.X, k.Y) || g.IsDiscovered(o.X, o.Y)
	}

	g.Index.EachWall(func(k world.EdgeKey) {
		if seen(k) {
			c.FillRect(edge(k), colorMapWall)
		}
	})
	g.Index.EachDoor(func(d *world.Door) {
		k := d.Key()
		if !seen(k) {
			return
		}
		col := colorMapDoor
		if d.Locked {
			col = colorMapLocked
		}
		if d.Opened && !d.Locked {
			col = colorMapRoom
		}
		c.FillRect(edge(k), col)
	})

	for _, seg := range g.Perimeter.Decor {
		if g.IsDiscovered(seg.X, seg.Y) {
			m.drawDiagonal(c, cell(seg.X, seg.Y), seg.Decor, line)
		}
	}

	if g.Pose != nil {
		r := cell(g.Pose.X, g.Pose.Y)
		in := fcs / 4
		c.FillRect(Rect{r.X0 + in, r.Y0 + in, r.X1 - in, r.Y1 - in}, colorMapViewer)
		tip := edge(world.EdgeKey{X: g.Pose.X, Y: g.Pose.Y, Edge: g.Pose.Facing})
		c.FillRect(tip, colorMapViewer)
	}
}

// drawDiagonal marks the cut corner of a shaped cell with a stepped line
// running across the corner the style leaves open.
func (m *Minimap) drawDiagonal(c Canvas, r Rect, s world.Style, line float64) {
	steps := int(r.Dx() / line)
	if steps <= 0 {
		return
	}
	// N+W and S+E shapes are cut along the anti-diagonal
	rising := s == world.StyleDiag1 || s == world.StyleRound1 || s == world.StyleDiag2 || s == world.StyleRound2
	for i := 0; i < steps; i++ {
		x := r.X0 + float64(i)*line
		y := r.Y0 + float64(i)*line
		if rising {
			y = r.Y1 - float64(i+1)*line
		}
		c.FillRect(Rect{x, y, x + line, y + line}, colorMapDecor)
	}
}
