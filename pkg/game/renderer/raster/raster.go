// Package raster is a software Canvas backed by image.RGBA. It renders
// without a window or GPU and feeds the terminal and screenshot paths.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"crawlview/pkg/game/view"
)

// Canvas implements view.Surface over an in-memory RGBA image
type Canvas struct {
	img *image.RGBA
}

// New allocates a w by h canvas
func New(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size implements view.Canvas
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fill implements view.Canvas
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect implements view.Canvas
func (c *Canvas) FillRect(r view.Rect, col color.Color) {
	draw.Draw(c.img, r.Image().Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawImage implements view.Canvas
func (c *Canvas) DrawImage(img image.Image, src image.Rectangle, dst view.Rect) {
	d := dst.Image()
	if d.Empty() || src.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, d, img, src, xdraw.Over, nil)
}

// DrawText implements view.Canvas using the 7x13 bitmap face
func (c *Canvas) DrawText(s string, x, y int, col color.Color) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}

// NewLayer implements view.Surface
func (c *Canvas) NewLayer(w, h int) view.Surface {
	return New(w, h)
}

// Resize implements view.Surface
func (c *Canvas) Resize(w, h int) {
	if cw, ch := c.Size(); cw == w && ch == h {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

// Composite implements view.Surface. The layer is scaled about the centre
// of this canvas, shifted by t.DX and blended at t.Alpha.
func (c *Canvas) Composite(src view.Surface, t view.Transform) {
	layer, ok := src.(*Canvas)
	if !ok || t.Alpha <= 0 {
		return
	}
	if t == view.Identity {
		draw.Draw(c.img, c.img.Bounds(), layer.img, image.Point{}, draw.Over)
		return
	}

	w, h := c.Size()
	cx, cy := float64(w)/2, float64(h)/2
	m := f64.Aff3{
		t.Scale, 0, cx - cx*t.Scale + t.DX,
		0, t.Scale, cy - cy*t.Scale,
	}
	var opts *xdraw.Options
	if t.Alpha < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha16{A: uint16(t.Alpha * 0xffff)})}
	}
	xdraw.ApproxBiLinear.Transform(c.img, m, layer.img, layer.img.Bounds(), xdraw.Over, opts)
}

// Dispose implements view.Surface
func (c *Canvas) Dispose() {
	c.img = image.NewRGBA(image.Rectangle{})
}
