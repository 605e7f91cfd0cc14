// Package gameplay turns viewer intents into validated pose changes and
// dungeon edits.
package gameplay

import (
	"time"

	"github.com/leonelquinteros/gotext"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

// DefaultCooldown throttles repeated moves
const DefaultCooldown = 120 * time.Millisecond

// Result describes what an intent did
type Result int

const (
	ResultIgnored Result = iota
	ResultMoved
	ResultTurned
	ResultBlocked
	ResultThrottled
	ResultEdited
	ResultNoPose
)

var resultNames = map[Result]string{
	ResultIgnored:   "ignored",
	ResultMoved:     "moved",
	ResultTurned:    "turned",
	ResultBlocked:   "blocked",
	ResultThrottled: "throttled",
	ResultEdited:    "edited",
	ResultNoPose:    "no pose",
}

func (r Result) String() string {
	return resultNames[r]
}

// PoseFunc is called with the old and new pose after a successful move or turn
type PoseFunc func(from, to world.Pose)

// Controller validates moves against the dungeon geometry. Turns always
// succeed; moves and strafes are throttled by a cooldown.
type Controller struct {
	game     *state.Game
	cooldown time.Duration
	now      func() time.Time

	lastMove time.Time
	hasMoved bool

	movementHinted bool
	doorHints      int

	onMove []PoseFunc
	onTurn []PoseFunc
}

// NewController creates a controller acting on g
func NewController(g *state.Game, cooldown time.Duration) *Controller {
	return &Controller{
		game:     g,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests and replays
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// OnMove registers a callback for successful moves and strafes
func (c *Controller) OnMove(fn PoseFunc) {
	c.onMove = append(c.onMove, fn)
}

// OnTurn registers a callback for turns
func (c *Controller) OnTurn(fn PoseFunc) {
	c.onTurn = append(c.onTurn, fn)
}

// moveEdge returns the edge a movement action crosses for a pose
func moveEdge(p world.Pose, a engineinput.Action) (world.Edge, bool) {
	switch a {
	case engineinput.ActionMoveForward:
		return p.Facing, true
	case engineinput.ActionMoveBackward:
		return p.Back(), true
	case engineinput.ActionStrafeLeft:
		return p.Left(), true
	case engineinput.ActionStrafeRight:
		return p.Right(), true
	}
	return world.North, false
}

// Move steps the viewer one cell for a movement action, keeping the facing.
// The edge crossed must be open and the destination walkable.
func (c *Controller) Move(a engineinput.Action) Result {
	g := c.game
	if g.Pose == nil {
		return ResultNoPose
	}
	from := *g.Pose
	e, ok := moveEdge(from, a)
	if !ok {
		return ResultIgnored
	}

	now := c.now()
	if c.hasMoved && now.Sub(c.lastMove) < c.cooldown {
		return ResultThrottled
	}

	if !g.Resolver.CanStep(from.X, from.Y, e) {
		if info := g.Resolver.EdgeInfo(from.X, from.Y, e); info.Door != nil && info.Door.Locked {
			logMessage(g, "MSG_DOOR_LOCKED")
		}
		return ResultBlocked
	}

	c.lastMove, c.hasMoved = now, true
	to := from.Step(e)
	g.SetPose(to)
	UpdateExploration(g)
	c.showDoorHint()
	for _, fn := range c.onMove {
		fn(from, to)
	}
	return ResultMoved
}

// Turn rotates the viewer a quarter turn in place
func (c *Controller) Turn(right bool) Result {
	g := c.game
	if g.Pose == nil {
		return ResultNoPose
	}
	from := *g.Pose
	to := from.TurnLeft()
	if right {
		to = from.TurnRight()
	}
	g.SetPose(to)
	UpdateExploration(g)
	c.showDoorHint()
	for _, fn := range c.onTurn {
		fn(from, to)
	}
	return ResultTurned
}

// logMessage adds a translated message to the game's message log
func logMessage(g *state.Game, key string, a ...any) {
	g.AddMessage(gotext.Get(key, a...))
}
