package gameplay

import (
	engineinput "crawlview/pkg/engine/input"
)

// hintLimit is how many times each hint is shown before it goes quiet
const hintLimit = 3

// bindingFor returns the first key bound to a, for use in hint text
func bindingFor(a engineinput.Action) string {
	if keys := engineinput.GetBindingsByAction()[a]; len(keys) > 0 {
		return keys[0]
	}
	return "?"
}

// ShowMovementHint tells a newly placed viewer how to move. It is shown once.
func (c *Controller) ShowMovementHint() {
	if c.movementHinted || c.game.Pose == nil {
		return
	}
	c.movementHinted = true
	logMessage(c.game, "MSG_HINT_MOVE")
}

// showDoorHint points out a closed door in front of the viewer, for the
// first few doors only
func (c *Controller) showDoorHint() {
	g := c.game
	if c.doorHints >= hintLimit || g.Pose == nil {
		return
	}
	door := g.Index.DoorAt(g.Pose.X, g.Pose.Y, g.Pose.Facing)
	if door == nil || door.Opened {
		return
	}
	c.doorHints++
	if door.Locked {
		logMessage(g, "MSG_HINT_DOOR_LOCKED")
		return
	}
	logMessage(g, "MSG_HINT_DOOR", bindingFor(engineinput.ActionToggleDoor))
}
