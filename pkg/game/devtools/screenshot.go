package devtools

import (
	"fmt"
	"image/png"
	"os"

	"crawlview/pkg/game/renderer/raster"
	"crawlview/pkg/game/state"
	"crawlview/pkg/game/view"
)

// RenderPose draws the current pose of g on a fresh w by h software canvas
func RenderPose(g *state.Game, scene *view.Scene, w, h int) *raster.Canvas {
	c := raster.New(w, h)
	scene.Render(c, g.Resolver, g.Pose, g.Light)
	return c
}

// SaveScreenshot renders the current pose and writes it to path as PNG.
func SaveScreenshot(path string, g *state.Game, scene *view.Scene, w, h int) error {
	c := RenderPose(g, scene, w, h)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding screenshot: %w", err)
	}
	return f.Close()
}
