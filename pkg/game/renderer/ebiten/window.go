package ebiten

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/game/config"
	"crawlview/pkg/game/renderer"
)

const windowTitle = "crawlview"

// Window runs a Viewer in a resizable desktop window. It implements
// ebiten.Game and renderer.Frontend.
type Window struct {
	viewer *renderer.Viewer
	screen *Surface
	repeat *engineinput.Repeater

	width, height int
	opened        bool
	stop          atomic.Bool
}

// New creates a window front-end for v. The window size comes from, and is
// saved to, the process configuration.
func New(v *renderer.Viewer) *Window {
	return &Window{
		viewer: v,
		screen: &Surface{cache: newTextureCache()},
		repeat: engineinput.NewRepeater(engineinput.DefaultRepeatDelay, engineinput.DefaultRepeatInterval),
	}
}

// Update handles input (Ebiten interface)
func (w *Window) Update() error {
	if !w.opened {
		w.opened = true
		ww, wh := ebiten.WindowSize()
		slog.Info("window opened", "width", ww, "height", wh)
	}
	if w.stop.Load() || w.viewer.Quit() {
		return ebiten.Termination
	}
	if !ebiten.IsFocused() {
		w.repeat.Reset()
		return nil
	}
	for _, intent := range pollIntents(w.repeat, time.Now()) {
		if w.viewer.HandleIntent(intent) {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw renders a frame when the viewer has one due. The screen is not
// cleared between frames, so skipping a frame keeps the last image.
func (w *Window) Draw(screen *ebiten.Image) {
	w.screen.img = screen
	w.viewer.Draw(w.screen)
}

// Layout follows the window size and remembers it in the config
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.viewer.Resize(outsideWidth, outsideHeight)
		if err := config.Current().SetWindowSize(outsideWidth, outsideHeight); err != nil {
			slog.Warn("could not save window size", "err", err)
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or ctx ends
func (w *Window) Run(ctx context.Context) error {
	cfg := config.Current()
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			w.stop.Store(true)
		case <-done:
		}
	}()

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
