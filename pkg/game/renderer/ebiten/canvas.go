// Package ebiten shows a Viewer in a desktop window using Ebiten.
package ebiten

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"crawlview/pkg/game/view"
)

const (
	hudFontSize = 13
	// maxCachedTextures bounds the GPU copies kept of CPU-side textures
	maxCachedTextures = 64
)

// textureCache holds GPU copies of the atlas images, shared by a window and
// its layers
type textureCache struct {
	images map[image.Image]*ebiten.Image
	face   *text.GoTextFace
}

func newTextureCache() *textureCache {
	c := &textureCache{images: make(map[image.Image]*ebiten.Image)}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		slog.Warn("loading HUD font", "err", err)
		return c
	}
	c.face = &text.GoTextFace{Source: src, Size: hudFontSize}
	return c
}

func (c *textureCache) get(img image.Image) *ebiten.Image {
	if tex, ok := img.(*ebiten.Image); ok {
		return tex
	}
	if tex, ok := c.images[img]; ok {
		return tex
	}
	if len(c.images) >= maxCachedTextures {
		for k, tex := range c.images {
			tex.Deallocate()
			delete(c.images, k)
		}
	}
	tex := ebiten.NewImageFromImage(img)
	c.images[img] = tex
	return tex
}

// Surface implements view.Surface on an Ebiten image. The window's screen is
// wrapped without ownership; layers own their image.
type Surface struct {
	img   *ebiten.Image
	owned bool
	cache *textureCache
}

// Size returns the size of the surface in pixels
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Fill(c color.Color) {
	s.img.Fill(c)
}

func (s *Surface) FillRect(r view.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(s.img, float32(r.X0), float32(r.Y0), float32(r.Dx()), float32(r.Dy()), c, false)
}

func (s *Surface) DrawImage(img image.Image, src image.Rectangle, dst view.Rect) {
	if dst.Empty() || src.Empty() {
		return
	}
	sub, ok := s.cache.get(img).SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Dx()/float64(src.Dx()), dst.Dy()/float64(src.Dy()))
	op.GeoM.Translate(dst.X0, dst.Y0)
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(sub, op)
}

func (s *Surface) DrawText(str string, x, y int, c color.Color) {
	if s.cache.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, s.cache.face, op)
}

// NewLayer creates an off-screen surface sharing this surface's texture cache
func (s *Surface) NewLayer(w, h int) view.Surface {
	return &Surface{img: ebiten.NewImage(max(w, 1), max(h, 1)), owned: true, cache: s.cache}
}

// Resize reallocates an owned surface; the screen is sized by Ebiten
func (s *Surface) Resize(w, h int) {
	if !s.owned {
		return
	}
	if cw, ch := s.Size(); cw == w && ch == h {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(max(w, 1), max(h, 1))
}

// Composite draws src scaled about the centre, shifted and faded by t
func (s *Surface) Composite(src view.Surface, t view.Transform) {
	layer, ok := src.(*Surface)
	if !ok {
		return
	}
	w, h := layer.Size()
	cx, cy := float64(w)/2, float64(h)/2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(t.Scale, t.Scale)
	op.GeoM.Translate(cx+t.DX, cy)
	op.ColorScale.ScaleAlpha(float32(t.Alpha))
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(layer.img, op)
}

// Dispose frees an owned surface's image
func (s *Surface) Dispose() {
	if s.owned && s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
