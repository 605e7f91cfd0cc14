package tui

import (
	"context"
	"io"
	"strings"
	"time"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/game/renderer"
	"crawlview/pkg/game/renderer/raster"
)

// FrameInterval is how often a session checks for a pending redraw
const FrameInterval = time.Second / 60

// Size is a terminal size in character cells
type Size struct {
	Cols, Rows int
}

// Session connects a Viewer to one terminal stream. Keys arrive as raw byte
// chunks and sizes as they change; everything else happens on the Run
// goroutine, so the viewer is never touched concurrently.
type Session struct {
	viewer *renderer.Viewer
	out    io.Writer
	device engineinput.Device

	canvas *raster.Canvas
	size   Size
}

// NewSession creates a session writing frames to out
func NewSession(v *renderer.Viewer, out io.Writer, device engineinput.Device, size Size) *Session {
	s := &Session{viewer: v, out: out, device: device}
	s.resize(size)
	return s
}

// pixelSize leaves the bottom line for the help bar
func pixelSize(sz Size) (int, int) {
	rows := max(sz.Rows-1, 1)
	return max(sz.Cols, 1), rows * 2
}

func (s *Session) resize(sz Size) {
	s.size = sz
	w, h := pixelSize(sz)
	if s.canvas == nil {
		s.canvas = raster.New(w, h)
	} else {
		s.canvas.Resize(w, h)
	}
	s.viewer.Resize(w, h)
	io.WriteString(s.out, clearScreen())
}

// frame draws and writes one frame if the viewer has one due
func (s *Session) frame() error {
	if !s.viewer.Draw(s.canvas) {
		return nil
	}
	var sb strings.Builder
	Encode(&sb, s.canvas.Image())
	sb.WriteString(moveTo(s.size.Rows, 1))
	sb.WriteString(csi + "2K")
	sb.WriteString(helpLine(s.size.Cols))
	_, err := io.WriteString(s.out, sb.String())
	return err
}

// Run shows the viewer until it quits, the key stream closes or ctx ends.
func (s *Session) Run(ctx context.Context, keys <-chan []byte, sizes <-chan Size) error {
	io.WriteString(s.out, enableAltScreen()+hideCursor()+clearScreen())
	defer io.WriteString(s.out, reset+showCursor()+disableAltScreen())

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case data, ok := <-keys:
			if !ok {
				return nil
			}
			for _, intent := range engineinput.Intents(s.device, data) {
				if s.viewer.HandleIntent(intent) {
					return nil
				}
			}

		case sz := <-sizes:
			s.resize(sz)

		case <-ticker.C:
			if err := s.frame(); err != nil {
				return err
			}
		}
	}
}
