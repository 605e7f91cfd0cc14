package gameplay

import (
	engineinput "crawlview/pkg/engine/input"
)

// ProcessIntent handles a high-level input intent from the tiered input
// system. Intents that only concern the front-end (minimap, screenshot,
// quit) are ignored here.
func (c *Controller) ProcessIntent(intent engineinput.Intent) Result {
	g := c.game

	switch intent.Action {
	case engineinput.ActionMoveForward, engineinput.ActionMoveBackward,
		engineinput.ActionStrafeLeft, engineinput.ActionStrafeRight:
		return c.Move(intent.Action)

	case engineinput.ActionTurnLeft:
		return c.Turn(false)

	case engineinput.ActionTurnRight:
		return c.Turn(true)

	case engineinput.ActionCycleStyle:
		p, s, ok := g.CycleStyle()
		if !ok {
			return ResultNoPose
		}
		logMessage(g, "MSG_STYLE_CHANGED", p.String(), string(s))
		return ResultEdited

	case engineinput.ActionToggleDoor:
		door, ok := g.ToggleDoor()
		switch {
		case ok && door.Opened:
			logMessage(g, "MSG_DOOR_OPENED")
		case ok:
			logMessage(g, "MSG_DOOR_CLOSED")
		case door != nil:
			logMessage(g, "MSG_DOOR_LOCKED")
			return ResultBlocked
		default:
			logMessage(g, "MSG_NO_DOOR")
			return ResultIgnored
		}
		return ResultEdited

	case engineinput.ActionToggleLight:
		if g.ToggleLight() {
			UpdateExploration(g)
			logMessage(g, "MSG_LIGHT_ON")
		} else {
			logMessage(g, "MSG_LIGHT_OFF")
		}
		return ResultEdited
	}
	return ResultIgnored
}
