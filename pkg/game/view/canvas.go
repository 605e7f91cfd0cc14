// Package view draws the first-person dungeon view: frame projection, the
// per-depth scene, the tile atlas and the minimap overlay.
package view

import (
	"image"
	"image/color"
	"math"
)

// Rect is a floating point rectangle in canvas pixels
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Dx returns the width
func (r Rect) Dx() float64 { return r.X1 - r.X0 }

// Dy returns the height
func (r Rect) Dy() float64 { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Image rounds the rectangle to integer pixel bounds
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X0)), int(math.Round(r.Y0)),
		int(math.Round(r.X1)), int(math.Round(r.Y1)),
	)
}

// LeftHalf returns the left half of r
func (r Rect) LeftHalf() Rect {
	return Rect{r.X0, r.Y0, r.X0 + r.Dx()/2, r.Y1}
}

// RightHalf returns the right half of r
func (r Rect) RightHalf() Rect {
	return Rect{r.X0 + r.Dx()/2, r.Y0, r.X1, r.Y1}
}

// Canvas is a drawing surface. Implementations live in the renderer backends.
type Canvas interface {
	Size() (w, h int)
	Fill(c color.Color)
	FillRect(r Rect, c color.Color)
	// DrawImage scales the src region of img into dst, blending over
	DrawImage(img image.Image, src image.Rectangle, dst Rect)
	// DrawText draws s with its top-left corner at (x, y)
	DrawText(s string, x, y int, c color.Color)
}

// Transform positions a layer when it is composited: scaled about the
// canvas centre, shifted horizontally by DX pixels, blended at Alpha.
type Transform struct {
	Alpha float64
	Scale float64
	DX    float64
}

// Identity draws a layer unchanged
var Identity = Transform{Alpha: 1, Scale: 1}

// Surface is a Canvas that can hold off-screen layers and composite them.
type Surface interface {
	Canvas
	// NewLayer creates an off-screen surface of the given size
	NewLayer(w, h int) Surface
	// Resize reallocates the surface, discarding its contents
	Resize(w, h int)
	// Composite draws src onto this surface with the given transform
	Composite(src Surface, t Transform)
	// Dispose releases any resources held by the surface
	Dispose()
}
