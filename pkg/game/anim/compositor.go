package anim

import (
	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/view"
)

// RenderFunc draws the scene of a pose onto a canvas
type RenderFunc func(c view.Canvas, pose world.Pose)

// Compositor owns the two off-screen layers a transition is blended from.
// The layers are reused between frames and resized in place.
type Compositor struct {
	from, to view.Surface
}

// Draw renders both poses of tr off-screen and blends them onto screen at
// eased progress e.
func (c *Compositor) Draw(screen view.Surface, tr *Transition, e float64, p Params, render RenderFunc) {
	w, h := screen.Size()
	c.ensure(screen, w, h)

	render(c.from, tr.From)
	render(c.to, tr.To)

	fromT, toT := tr.Layers(e, w, p)
	screen.Fill(view.BackgroundColor)
	screen.Composite(c.from, fromT)
	screen.Composite(c.to, toT)
}

// Resize reallocates existing layers to w by h
func (c *Compositor) Resize(w, h int) {
	if c.from != nil {
		c.from.Resize(w, h)
	}
	if c.to != nil {
		c.to.Resize(w, h)
	}
}

func (c *Compositor) ensure(screen view.Surface, w, h int) {
	if c.from == nil {
		c.from = screen.NewLayer(w, h)
		c.to = screen.NewLayer(w, h)
		return
	}
	c.Resize(w, h)
}

// Dispose releases both layers
func (c *Compositor) Dispose() {
	if c.from != nil {
		c.from.Dispose()
		c.to.Dispose()
		c.from, c.to = nil, nil
	}
}
