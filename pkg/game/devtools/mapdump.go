// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

var (
	styleWall   = color.Style{color.FgWhite, color.OpBold}
	styleDoor   = color.Style{color.FgYellow, color.OpBold}
	styleLocked = color.Style{color.FgRed, color.OpBold}
	styleRoom   = color.Style{color.FgGray}
	styleCorr   = color.Style{color.FgBlue}
	styleViewer = color.Style{color.FgGreen, color.OpBold}
	styleDecor  = color.Style{color.FgMagenta}
)

// dumper writes glyphs, coloured or plain
type dumper struct {
	sb      strings.Builder
	colored bool
}

func (d *dumper) put(s color.Style, text string) {
	if d.colored {
		d.sb.WriteString(s.Sprint(text))
		return
	}
	d.sb.WriteString(text)
}

// edgeGlyph returns the glyph and style of a boundary, or ok=false when open
func edgeGlyph(g *state.Game, x, y int, e world.Edge, wall string) (string, color.Style, bool) {
	if d := g.Index.DoorAt(x, y, e); d != nil {
		switch {
		case d.Locked:
			return strings.Repeat("L", len(wall)), styleLocked, true
		case d.Opened:
			return strings.Repeat("'", len(wall)), styleDoor, true
		default:
			return strings.Repeat("D", len(wall)), styleDoor, true
		}
	}
	if g.Index.HasWall(x, y, e) {
		return wall, styleWall, true
	}
	return "", color.Style{}, false
}

var facingGlyph = map[world.Edge]string{
	world.North: "^^",
	world.East:  ">>",
	world.South: "vv",
	world.West:  "<<",
}

var styleGlyph = map[world.Style]string{
	world.StyleDiag1: "/ ", world.StyleRound1: "( ",
	world.StyleDiag2: " /", world.StyleRound2: " )",
	world.StyleDiag3: " \\", world.StyleRound3: " )",
	world.StyleDiag4: "\\ ", world.StyleRound4: "( ",
}

func cellGlyph(g *state.Game, x, y int) (string, color.Style) {
	if g.Pose != nil && g.Pose.X == x && g.Pose.Y == y {
		return facingGlyph[g.Pose.Facing], styleViewer
	}
	switch g.Grid.At(x, y) {
	case world.Room:
		if s, ok := styleGlyph[g.Styles.At(x, y)]; ok {
			return s, styleDecor
		}
		return "##", styleRoom
	case world.Corridor:
		return "==", styleCorr
	}
	return "  ", color.Style{}
}

// DumpPerimeter writes an ASCII plan of the derived walls and doors. Each
// cell is two characters wide with its boundaries drawn around it.
func DumpPerimeter(w io.Writer, g *state.Game, colored bool) error {
	d := &dumper{colored: colored}
	cols, rows := g.Grid.Cols(), g.Grid.Rows()

	for y := 0; y <= rows; y++ {
		// the row of horizontal boundaries above row y
		for x := 0; x < cols; x++ {
			d.sb.WriteByte('+')
			glyph, style, ok := edgeGlyph(g, x, y, world.North, "--")
			if !ok {
				glyph = "  "
			}
			d.put(style, glyph)
		}
		d.sb.WriteString("+\n")
		if y == rows {
			break
		}

		for x := 0; x <= cols; x++ {
			glyph, style, ok := edgeGlyph(g, x, y, world.West, "|")
			if !ok {
				glyph = " "
			}
			d.put(style, glyph)
			if x < cols {
				glyph, style := cellGlyph(g, x, y)
				d.put(style, glyph)
			}
		}
		d.sb.WriteByte('\n')
	}

	fmt.Fprintf(&d.sb, "regions: %d  walls: %d  decor: %d\n",
		len(g.Perimeter.Regions), g.Index.WallCount(), len(g.Perimeter.Decor))
	for _, seg := range g.Perimeter.Decor {
		fmt.Fprintf(&d.sb, "  decor %d,%d %s\n", seg.X, seg.Y, seg.Decor)
	}

	_, err := io.WriteString(w, d.sb.String())
	return err
}
