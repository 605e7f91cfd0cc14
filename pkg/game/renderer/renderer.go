// Package renderer owns everything needed to show one viewer's first-person
// view: the texture atlas, the scene, the animation controller and the
// redraw scheduler. Each Viewer is independent; nothing is shared between
// viewers or held at package level.
package renderer

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/leonelquinteros/gotext"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/anim"
	"crawlview/pkg/game/config"
	"crawlview/pkg/game/devtools"
	"crawlview/pkg/game/gameplay"
	"crawlview/pkg/game/state"
	"crawlview/pkg/game/view"
)

var (
	colorHUD     = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	colorMessage = color.RGBA{0xe0, 0xc0, 0x70, 0xff}
)

// Viewer renders one game for one display
type Viewer struct {
	cfg  *config.Config
	game *state.Game

	atlas   *view.Atlas
	scene   *view.Scene
	minimap *view.Minimap

	anim  *anim.Controller
	comp  anim.Compositor
	sched *anim.RedrawScheduler
	input *gameplay.Controller

	now func() time.Time

	width, height int
	showMap       bool
	quit          bool
	closed        bool
}

// New creates a viewer for g. Textures from cfg.TextureDir load in the
// background over a generated fallback set.
func New(g *state.Game, cfg *config.Config) *Viewer {
	atlas := view.NewProceduralAtlas()
	sched := anim.NewRedrawScheduler()
	atlas.OnLoad(func(view.TileID) { sched.Request() })
	if cfg.TextureDir != "" {
		atlas.LoadDir(cfg.TextureDir)
	}

	scene := view.NewScene(atlas)
	scene.Depth = cfg.MaxDepth
	scene.Inset = cfg.InsetFactor

	v := &Viewer{
		cfg:     cfg,
		game:    g,
		atlas:   atlas,
		scene:   scene,
		minimap: view.NewMinimap(),
		anim: anim.NewController(anim.Params{
			MoveDuration: cfg.MoveDuration,
			TurnDuration: cfg.TurnDuration,
			Zoom:         cfg.ParallaxZoom,
			Shift:        cfg.ParallaxShift,
		}),
		sched:   sched,
		input:   gameplay.NewController(g, cfg.MoveCooldown),
		now:     time.Now,
		showMap: cfg.ShowMinimap,
	}

	v.input.OnMove(v.poseChanged)
	v.input.OnTurn(v.poseChanged)
	v.anim.Subscribe(func(ev anim.Event) {
		slog.Debug("transition ended", "pose", ev.Pose.String(), "status", ev.Status.String())
	})
	if g.Pose != nil {
		v.anim.SetPose(*g.Pose, v.now())
	}
	v.input.ShowMovementHint()
	return v
}

// SetClock replaces the time source of the viewer and its input controller
func (v *Viewer) SetClock(now func() time.Time) {
	v.now = now
	v.input.SetClock(now)
}

// Game returns the game being viewed
func (v *Viewer) Game() *state.Game {
	return v.game
}

// Scene returns the viewer's scene renderer
func (v *Viewer) Scene() *view.Scene {
	return v.scene
}

// Scheduler returns the redraw scheduler
func (v *Viewer) Scheduler() *anim.RedrawScheduler {
	return v.sched
}

// Animating reports whether a transition is in flight
func (v *Viewer) Animating() bool {
	return v.anim.Active() != nil
}

// Quit reports whether the viewer asked to stop
func (v *Viewer) Quit() bool {
	return v.quit
}

func (v *Viewer) poseChanged(_, to world.Pose) {
	v.anim.SetPose(to, v.now())
	v.sched.Request()
}

// HandleIntent applies one intent. It returns true once the viewer should quit.
func (v *Viewer) HandleIntent(intent engineinput.Intent) bool {
	switch intent.Action {
	case engineinput.ActionNone:
		return v.quit

	case engineinput.ActionQuit:
		v.quit = true
		return true

	case engineinput.ActionToggleMinimap:
		v.showMap = !v.showMap

	case engineinput.ActionScreenshot:
		path := v.cfg.ScreenshotPath
		w, h := v.width, v.height
		if w == 0 || h == 0 {
			w, h = v.cfg.WindowWidth, v.cfg.WindowHeight
		}
		if err := devtools.SaveScreenshot(path, v.game, v.scene, w, h); err != nil {
			slog.Warn("screenshot failed", "err", err)
			v.game.AddMessage(gotext.Get("MSG_SCREENSHOT_FAILED"))
		} else {
			slog.Info("screenshot saved", "path", path)
			v.game.AddMessage(gotext.Get("MSG_SCREENSHOT_SAVED", path))
		}

	default:
		switch v.input.ProcessIntent(intent) {
		case gameplay.ResultIgnored, gameplay.ResultThrottled, gameplay.ResultNoPose:
			return false
		}
	}
	v.sched.Request()
	return false
}

// Resize adapts to a new display size. A running transition is snapped to
// its destination and the off-screen layers are resized immediately.
func (v *Viewer) Resize(w, h int) {
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	v.anim.Cancel()
	v.comp.Resize(w, h)
	v.sched.Request()
}

// sync brings the animation controller in line with a pose that was changed
// outside the input controller
func (v *Viewer) sync() {
	p := v.game.Pose
	switch {
	case p == nil:
		if v.anim.Pose() != nil {
			v.anim.Clear()
		}
	case v.anim.Pose() == nil || *v.anim.Pose() != *p:
		v.anim.SetPose(*p, v.now())
	}
}

// Draw renders a frame onto screen if one is due and reports whether it drew.
// While a transition runs every frame schedules the next one.
func (v *Viewer) Draw(screen view.Surface) bool {
	if v.closed || !v.sched.Take() {
		return false
	}
	v.Resize(screen.Size())
	v.sync()

	tr, e := v.anim.Step(v.now())
	if tr != nil {
		v.comp.Draw(screen, tr, e, v.anim.Params(), v.renderPose)
		v.sched.Request()
	} else {
		v.scene.Render(screen, v.game.Resolver, v.anim.Pose(), v.game.Light)
	}

	if v.showMap {
		v.minimap.Draw(screen, v.game)
	}
	v.drawHUD(screen)
	return true
}

func (v *Viewer) renderPose(c view.Canvas, p world.Pose) {
	v.scene.Render(c, v.game.Resolver, &p, v.game.Light)
}

func (v *Viewer) drawHUD(c view.Canvas) {
	_, h := c.Size()
	if p := v.anim.Pose(); p != nil {
		label := v.game.Name
		if label != "" {
			label += " "
		}
		c.DrawText(fmt.Sprintf("%s%d,%d %s", label, p.X, p.Y, p.Facing), 8, 8, colorHUD)
	}
	for i, msg := range v.game.Messages {
		y := h - 8 - (len(v.game.Messages)-i)*14
		c.DrawText(msg, 8, y, colorMessage)
	}
}

// Close releases the viewer's off-screen layers and waits for texture loads
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.comp.Dispose()
	v.atlas.Wait()
}
