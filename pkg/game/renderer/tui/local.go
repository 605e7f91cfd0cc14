package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/engine/terminal"
	"crawlview/pkg/game/renderer"
)

// Local runs a viewer in the process's own terminal
type Local struct {
	viewer *renderer.Viewer
}

// NewLocal creates the local terminal front-end
func NewLocal(v *renderer.Viewer) *Local {
	return &Local{viewer: v}
}

// Run puts the terminal in raw mode and shows the viewer until it quits
func (l *Local) Run(ctx context.Context) error {
	if !terminal.IsInteractive() {
		return fmt.Errorf("stdin is not a terminal")
	}
	restore, err := terminal.MakeRaw()
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan []byte, 16)
	go func() {
		defer close(keys)
		buf := make([]byte, 64)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case keys <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	cols, rows := terminal.GetSize()
	sizes := make(chan Size, 1)
	go func() {
		last := Size{Cols: cols, Rows: rows}
		t := time.NewTicker(250 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c, r := terminal.GetSize()
				if sz := (Size{Cols: c, Rows: r}); sz != last {
					last = sz
					select {
					case sizes <- sz:
					default:
					}
				}
			}
		}
	}()

	session := NewSession(l.viewer, os.Stdout, engineinput.DeviceTerminal, Size{Cols: cols, Rows: rows})
	return session.Run(ctx, keys, sizes)
}
