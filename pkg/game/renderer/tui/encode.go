package tui

import (
	"image"
	"strings"

	"github.com/gookit/color"
)

// Encode writes img as rows of half-block characters starting at the top
// left of the terminal. Each character covers two vertically stacked pixels.
// Colour codes are only emitted when they change.
func Encode(sb *strings.Builder, img *image.RGBA) {
	b := img.Bounds()
	var lastFg, lastBg [3]uint8
	first := true

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		sb.WriteString(moveTo((y-b.Min.Y)/2+1, 1))
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bot := top
			if y+1 < b.Max.Y {
				bot = img.RGBAAt(x, y+1)
			}
			fg := [3]uint8{top.R, top.G, top.B}
			bg := [3]uint8{bot.R, bot.G, bot.B}
			if first || fg != lastFg || bg != lastBg {
				sb.WriteString(sgr(
					color.RGB(fg[0], fg[1], fg[2]).Code(),
					color.RGB(bg[0], bg[1], bg[2], true).Code(),
				))
				lastFg, lastBg, first = fg, bg, false
			}
			sb.WriteString(upperHalf)
		}
	}
	sb.WriteString(reset)
}
