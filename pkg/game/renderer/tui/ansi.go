// Package tui shows a Viewer in a character terminal. Frames are rendered on
// a software canvas and printed as half-block characters, two pixels per cell.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gookit/color"

	engineinput "crawlview/pkg/engine/input"
)

const (
	esc   = "\x1b"
	csi   = esc + "["
	reset = csi + "0m"

	// upperHalf paints the top pixel in the foreground colour and the bottom
	// one in the background colour
	upperHalf = "▀"
)

func moveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", csi, row, col)
}

func clearScreen() string      { return csi + "2J" }
func hideCursor() string       { return csi + "?25l" }
func showCursor() string       { return csi + "?25h" }
func enableAltScreen() string  { return csi + "?1049h" }
func disableAltScreen() string { return csi + "?1049l" }

// sgr wraps SGR parameter codes produced by gookit/color into an escape sequence
func sgr(codes ...string) string {
	return csi + strings.Join(codes, ";") + "m"
}

// helpLine lists the key bindings, one group per action, fitted to width
func helpLine(width int) string {
	byAction := engineinput.GetBindingsByAction()
	actions := make([]engineinput.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	var sb strings.Builder
	used := 0
	for _, a := range actions {
		keys := byAction[a]
		key, name := keys[len(keys)-1], engineinput.ActionName(a)
		n := len(key) + len(name) + 3
		if used+n > width {
			break
		}
		used += n
		sb.WriteString(sgr(color.FgCyan.Code(), color.OpBold.Code()) + key + reset)
		sb.WriteString(sgr(color.FgGray.Code()) + " " + name + "  " + reset)
	}
	return sb.String()
}
