package input

import (
	"sort"
	"time"
)

// Device identifies where an input came from
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
	DeviceSSH
)

// Action represents a high‑level intent of the viewer.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveForward
	ActionMoveBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight

	// Editing the dungeon the viewer stands in
	ActionCycleStyle
	ActionToggleDoor
	ActionToggleLight

	// Meta / UI
	ActionToggleMinimap
	ActionScreenshot
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the viewer wants to do.
type Intent struct {
	Action Action
}

// RawInput is a key or button event as a device reports it.
// Code is a device‑specific identifier (e.g. "w", "arrow_up", "tab").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is a raw event with its timing stripped.
// Movement throttling happens later, in the gameplay controller, so that turns
// are never throttled.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput drops the timestamp of a raw event
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps key codes to actions; several codes share an action
var bindings = map[string]Action{
	// Movement (arrows, WASD, Vim)
	"arrow_up":   ActionMoveForward,
	"w":          ActionMoveForward,
	"k":          ActionMoveForward,
	"arrow_down": ActionMoveBackward,
	"s":          ActionMoveBackward,
	"j":          ActionMoveBackward,
	"a":          ActionStrafeLeft,
	"d":          ActionStrafeRight,

	// Turning
	"arrow_left":  ActionTurnLeft,
	"q":           ActionTurnLeft,
	"h":           ActionTurnLeft,
	"arrow_right": ActionTurnRight,
	"e":           ActionTurnRight,
	"l":           ActionTurnRight,

	// Editing
	"tab": ActionCycleStyle,
	"f":   ActionToggleDoor,
	"t":   ActionToggleLight,

	// Meta
	"m":      ActionToggleMinimap,
	"p":      ActionScreenshot,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,
}

// MapToIntent looks the input up in the bindings. Unbound codes map to
// ActionNone.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// IsMovement reports whether the action changes the viewer's cell
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveForward, ActionMoveBackward, ActionStrafeLeft, ActionStrafeRight:
		return true
	}
	return false
}

// ActionName returns the label shown for an action in help text
func ActionName(a Action) string {
	switch a {
	case ActionMoveForward:
		return "Forward"
	case ActionMoveBackward:
		return "Back"
	case ActionStrafeLeft:
		return "Strafe Left"
	case ActionStrafeRight:
		return "Strafe Right"
	case ActionTurnLeft:
		return "Turn Left"
	case ActionTurnRight:
		return "Turn Right"
	case ActionCycleStyle:
		return "Cycle Shape"
	case ActionToggleDoor:
		return "Door"
	case ActionToggleLight:
		return "Light"
	case ActionToggleMinimap:
		return "Map"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction groups the bound codes by action, each list sorted
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
