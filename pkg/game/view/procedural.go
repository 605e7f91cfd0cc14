package view

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// TextureSize is the edge length of generated textures
const TextureSize = 64

// Palette used by the generated textures and the minimap
var (
	colorStone     = color.RGBA{0x6b, 0x68, 0x62, 0xff}
	colorMortar    = color.RGBA{0x3a, 0x37, 0x33, 0xff}
	colorStoneDark = color.RGBA{0x4a, 0x47, 0x42, 0xff}
	colorFloor     = color.RGBA{0x4b, 0x3a, 0x2a, 0xff}
	colorFloorFar  = color.RGBA{0x33, 0x28, 0x1d, 0xff}
	colorCeiling   = color.RGBA{0x2d, 0x31, 0x3a, 0xff}
	colorCeilFar   = color.RGBA{0x1f, 0x22, 0x29, 0xff}
	colorWood      = color.RGBA{0x7a, 0x4e, 0x26, 0xff}
	colorWoodDark  = color.RGBA{0x52, 0x33, 0x18, 0xff}
	colorIron      = color.RGBA{0x8c, 0x8f, 0x96, 0xff}
	colorBackdrop  = color.RGBA{0x08, 0x08, 0x0a, 0xff}

	// BackgroundColor fills the canvas before anything else is drawn
	BackgroundColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// sideBand is the share of a tile's width used by each wall band of the
// narrow corridor texture
const sideBand = 0.06

// FillProcedural installs a generated texture for every tile. Used as the
// fallback atlas when no texture directory is configured, and underneath
// loaded textures while they are still decoding.
func FillProcedural(a *Atlas) {
	s := TextureSize
	a.Set(TileFloorClose, planks(s, colorFloor, colorFloorFar))
	a.Set(TileFloorFar, planks(s, colorFloorFar, colorBackdrop))
	a.Set(TileCeilingClose, flat(s, colorCeiling))
	a.Set(TileCeilingFar, flat(s, colorCeilFar))
	a.Set(TileWallFront, bricks(s, colorStone, colorMortar))
	a.Set(TileWallSide, sideWalls(s, 0.5, colorStoneDark, colorMortar))
	a.Set(TileNarrowCorridor, sideWalls(s, sideBand, colorStoneDark, colorMortar))
	a.Set(TileBackdrop, flat(s, colorBackdrop))
	a.Set(TileDoor, door(s, false))
	a.Set(TileDoorLocked, door(s, true))
	a.Set(TileDoorSide, sideWalls(s, 0.5, colorWoodDark, colorWood))
	a.Set(TileGlow, glow(s))
}

// NewProceduralAtlas returns an atlas holding only generated textures
func NewProceduralAtlas() *Atlas {
	a := NewAtlas()
	FillProcedural(a)
	return a
}

func flat(s int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func bricks(s int, stone, mortar color.Color) *image.RGBA {
	img := flat(s, stone)
	row := s / 8
	for y := 0; y < s; y += row {
		draw.Draw(img, image.Rect(0, y, s, y+1), image.NewUniform(mortar), image.Point{}, draw.Src)
		offset := 0
		if (y/row)%2 == 1 {
			offset = s / 8
		}
		for x := offset; x < s; x += s / 4 {
			draw.Draw(img, image.Rect(x, y, x+1, y+row), image.NewUniform(mortar), image.Point{}, draw.Src)
		}
	}
	return img
}

func planks(s int, near, far color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	for y := 0; y < s; y++ {
		t := float64(y) / float64(s-1)
		c := lerpColor(far, near, t)
		draw.Draw(img, image.Rect(0, y, s, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	for x := 0; x < s; x += s / 6 {
		draw.Draw(img, image.Rect(x, 0, x+1, s), image.NewUniform(colorMortar), image.Point{}, draw.Src)
	}
	return img
}

// sideWalls draws a left wall band narrowing toward the centre and its
// mirror on the right; band is the share of width each side occupies.
// The middle stays transparent.
func sideWalls(s int, band float64, fill, line color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	w := float32(float64(s) * band)
	fs := float32(s)
	drop := w * 0.6

	r := vector.NewRasterizer(s, s)
	r.MoveTo(0, 0)
	r.LineTo(w, drop)
	r.LineTo(w, fs-drop)
	r.LineTo(0, fs)
	r.ClosePath()
	r.MoveTo(fs, 0)
	r.LineTo(fs-w, drop)
	r.LineTo(fs-w, fs-drop)
	r.LineTo(fs, fs)
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})

	// mortar courses following the slope
	for i := 1; i < 8; i++ {
		y := fs * float32(i) / 8
		lr := vector.NewRasterizer(s, s)
		ly := drop + (fs-2*drop)*float32(i)/8
		lr.MoveTo(0, y)
		lr.LineTo(w, ly)
		lr.LineTo(w, ly+1)
		lr.LineTo(0, y+1)
		lr.ClosePath()
		lr.MoveTo(fs, y)
		lr.LineTo(fs-w, ly)
		lr.LineTo(fs-w, ly+1)
		lr.LineTo(fs, y+1)
		lr.ClosePath()
		lr.Draw(img, img.Bounds(), image.NewUniform(line), image.Point{})
	}
	return img
}

func door(s int, locked bool) *image.RGBA {
	img := flat(s, colorWood)
	for x := 0; x < s; x += s / 8 {
		draw.Draw(img, image.Rect(x, 0, x+1, s), image.NewUniform(colorWoodDark), image.Point{}, draw.Src)
	}
	// the seam where the two leaves meet
	draw.Draw(img, image.Rect(s/2-1, 0, s/2+1, s), image.NewUniform(colorWoodDark), image.Point{}, draw.Src)
	if locked {
		for _, y := range []int{s / 5, s * 4 / 5} {
			draw.Draw(img, image.Rect(0, y-2, s, y+2), image.NewUniform(colorIron), image.Point{}, draw.Src)
		}
		draw.Draw(img, image.Rect(s/2-4, s/2-5, s/2+4, s/2+5), image.NewUniform(colorIron), image.Point{}, draw.Src)
	} else {
		draw.Draw(img, image.Rect(s/2-5, s/2-1, s/2-2, s/2+2), image.NewUniform(colorIron), image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(s/2+2, s/2-1, s/2+5, s/2+2), image.NewUniform(colorIron), image.Point{}, draw.Src)
	}
	return img
}

// glow is a warm radial gradient centred low in the frame, alpha only at the rim
func glow(s int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	cx, cy := float64(s)/2, float64(s)*0.7
	maxDist := math.Hypot(cx, cy)
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			a := uint8(math.Max(0, 1-d) * 70)
			// premultiplied
			img.SetRGBA(x, y, color.RGBA{
				R: a,
				G: uint8(float64(a) * 0.7),
				B: uint8(float64(a) * 0.3),
				A: a,
			})
		}
	}
	return img
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}
