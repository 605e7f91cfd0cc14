package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/config"
	"crawlview/pkg/game/renderer"
	"crawlview/pkg/game/state"
)

func TestEncode_HalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, red)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, blue)

	var sb strings.Builder
	Encode(&sb, img)
	out := sb.String()

	if n := strings.Count(out, upperHalf); n != 2 {
		t.Errorf("half blocks = %d, want 2", n)
	}
	if n := strings.Count(out, "38;2;255;0;0"); n != 1 {
		t.Errorf("foreground code emitted %d times, want 1", n)
	}
	if !strings.Contains(out, "48;2;0;0;255") {
		t.Error("missing background code for bottom pixel")
	}
	if !strings.HasSuffix(out, reset) {
		t.Error("output does not end with a reset")
	}
}

func TestEncode_OddHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	var sb strings.Builder
	Encode(&sb, img)
	if n := strings.Count(sb.String(), upperHalf); n != 6 {
		t.Errorf("half blocks = %d, want 6", n)
	}
	if !strings.Contains(sb.String(), moveTo(2, 1)) {
		t.Error("second row not positioned")
	}
}

func TestPixelSize(t *testing.T) {
	w, h := pixelSize(Size{Cols: 80, Rows: 24})
	if w != 80 || h != 46 {
		t.Errorf("pixelSize = %dx%d, want 80x46", w, h)
	}
	w, h = pixelSize(Size{})
	if w != 1 || h != 2 {
		t.Errorf("pixelSize(empty) = %dx%d, want 1x2", w, h)
	}
}

func newSession(t *testing.T, out *bytes.Buffer) *Session {
	t.Helper()
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1}, {1}, {1}}))
	g.SetPose(world.Pose{X: 0, Y: 2, Facing: world.North})
	cfg := config.Defaults()
	cfg.ShowMinimap = false
	v := renderer.New(g, cfg)
	t.Cleanup(v.Close)
	return NewSession(v, out, engineinput.DeviceTerminal, Size{Cols: 20, Rows: 6})
}

func TestSession_FrameWritesHelpLine(t *testing.T) {
	var out bytes.Buffer
	s := newSession(t, &out)

	if err := s.frame(); err != nil {
		t.Fatalf("frame: %v", err)
	}
	got := out.String()
	if strings.Count(got, upperHalf) != 20*5 {
		t.Errorf("half blocks = %d, want %d", strings.Count(got, upperHalf), 20*5)
	}
	if !strings.Contains(got, moveTo(6, 1)) {
		t.Error("help line not placed on the last row")
	}

	out.Reset()
	if err := s.frame(); err != nil || out.Len() != 0 {
		t.Errorf("second frame wrote %d bytes without a redraw request", out.Len())
	}
}

func TestSession_QuitKeyEndsRun(t *testing.T) {
	var out bytes.Buffer
	s := newSession(t, &out)

	keys := make(chan []byte, 1)
	keys <- []byte{3}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Run(ctx, keys, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, clearScreen()+enableAltScreen()) {
		t.Error("alternate screen not entered")
	}
	if !strings.HasSuffix(got, disableAltScreen()) {
		t.Error("alternate screen not left")
	}
}

func TestSession_ClosedKeysEndRun(t *testing.T) {
	var out bytes.Buffer
	s := newSession(t, &out)

	keys := make(chan []byte)
	close(keys)
	if err := s.Run(context.Background(), keys, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestHelpLine_FitsWidth(t *testing.T) {
	if helpLine(3) != "" {
		t.Error("help line should be empty when nothing fits")
	}
	if !strings.Contains(helpLine(1000), engineinput.ActionName(engineinput.ActionQuit)) {
		t.Error("wide help line misses quit")
	}
}
