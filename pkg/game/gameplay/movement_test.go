package gameplay

import (
	"testing"
	"time"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

// fakeClock is advanced by hand
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

// makeCorridor creates a 1x3 column of rooms with the viewer at the bottom facing north
func makeCorridor(t *testing.T) (*Controller, *state.Game, *fakeClock) {
	t.Helper()
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1}, {1}, {1}}))
	g.SetPose(world.Pose{X: 0, Y: 2, Facing: world.North})
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewController(g, DefaultCooldown)
	c.SetClock(clock.now)
	return c, g, clock
}

func TestMove_Forward(t *testing.T) {
	c, g, _ := makeCorridor(t)
	var moves [][2]world.Pose
	c.OnMove(func(from, to world.Pose) { moves = append(moves, [2]world.Pose{from, to}) })

	if r := c.Move(engineinput.ActionMoveForward); r != ResultMoved {
		t.Fatalf("Move = %v, want moved", r)
	}
	want := world.Pose{X: 0, Y: 1, Facing: world.North}
	if *g.Pose != want {
		t.Errorf("pose = %v, want %v", *g.Pose, want)
	}
	if len(moves) != 1 || moves[0][1] != want {
		t.Errorf("OnMove calls = %v", moves)
	}
}

func TestMove_BlockedLeavesPoseAndFiresNothing(t *testing.T) {
	c, g, _ := makeCorridor(t)
	g.AuthoredWalls = []world.WallSegment{{X: 0, Y: 1, Edge: world.South}}
	g.Rebuild()

	called := false
	c.OnMove(func(_, _ world.Pose) { called = true })

	before := *g.Pose
	if r := c.Move(engineinput.ActionMoveForward); r != ResultBlocked {
		t.Errorf("Move = %v, want blocked", r)
	}
	if *g.Pose != before || called {
		t.Errorf("blocked move changed pose to %v (callback=%v)", *g.Pose, called)
	}
}

func TestMove_IntoUnwalkableCell(t *testing.T) {
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1, 0}}))
	g.SetPose(world.Pose{X: 0, Y: 0, Facing: world.East})
	c := NewController(g, 0)
	for _, a := range []engineinput.Action{
		engineinput.ActionMoveForward, engineinput.ActionMoveBackward,
		engineinput.ActionStrafeLeft, engineinput.ActionStrafeRight,
	} {
		if r := c.Move(a); r != ResultBlocked {
			t.Errorf("Move(%v) = %v, want blocked", engineinput.ActionName(a), r)
		}
	}
}

func TestMove_StrafeKeepsFacing(t *testing.T) {
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1, 1}}))
	g.SetPose(world.Pose{X: 0, Y: 0, Facing: world.North})
	c := NewController(g, 0)
	if r := c.Move(engineinput.ActionStrafeRight); r != ResultMoved {
		t.Fatalf("strafe = %v", r)
	}
	if *g.Pose != (world.Pose{X: 1, Y: 0, Facing: world.North}) {
		t.Errorf("pose = %v", *g.Pose)
	}
}

func TestMove_Cooldown(t *testing.T) {
	c, g, clock := makeCorridor(t)

	c.Move(engineinput.ActionMoveForward)
	clock.advance(50 * time.Millisecond)
	if r := c.Move(engineinput.ActionMoveForward); r != ResultThrottled {
		t.Errorf("second move within cooldown = %v, want throttled", r)
	}
	if r := c.Turn(true); r != ResultTurned {
		t.Errorf("turn within cooldown = %v, want turned", r)
	}
	clock.advance(70 * time.Millisecond)
	if r := c.Move(engineinput.ActionStrafeLeft); r != ResultMoved {
		t.Errorf("move after cooldown = %v, want moved", r)
	}
	if *g.Pose != (world.Pose{X: 0, Y: 0, Facing: world.East}) {
		t.Errorf("pose = %v", *g.Pose)
	}
}

func TestTurn_AlwaysSucceedsAndWraps(t *testing.T) {
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1}}))
	g.SetPose(world.Pose{Facing: world.North})
	c := NewController(g, DefaultCooldown)
	var turns int
	c.OnTurn(func(_, _ world.Pose) { turns++ })

	c.Turn(false)
	if g.Pose.Facing != world.West {
		t.Errorf("left of north = %v, want W", g.Pose.Facing)
	}
	for i := 0; i < 4; i++ {
		c.Turn(true)
	}
	if g.Pose.Facing != world.West || turns != 5 {
		t.Errorf("facing = %v turns = %d", g.Pose.Facing, turns)
	}
}

func TestNoPose(t *testing.T) {
	g := state.NewGame(world.NewGrid(1, 1))
	c := NewController(g, 0)
	if r := c.Move(engineinput.ActionMoveForward); r != ResultNoPose {
		t.Errorf("Move = %v", r)
	}
	if r := c.Turn(true); r != ResultNoPose {
		t.Errorf("Turn = %v", r)
	}
}

func TestProcessIntent(t *testing.T) {
	c, g, _ := makeCorridor(t)
	g.Doors = []*world.Door{{X: 0, Y: 2, Edge: world.North}}
	g.Rebuild()

	if r := c.ProcessIntent(engineinput.Intent{Action: engineinput.ActionMoveForward}); r != ResultBlocked {
		t.Errorf("forward into closed door = %v", r)
	}
	if r := c.ProcessIntent(engineinput.Intent{Action: engineinput.ActionToggleDoor}); r != ResultEdited {
		t.Errorf("toggle door = %v", r)
	}
	if r := c.ProcessIntent(engineinput.Intent{Action: engineinput.ActionMoveForward}); r != ResultMoved {
		t.Errorf("forward through open door = %v", r)
	}
	if r := c.ProcessIntent(engineinput.Intent{Action: engineinput.ActionToggleLight}); r != ResultEdited || !g.Light {
		t.Errorf("toggle light = %v light=%v", r, g.Light)
	}
	if r := c.ProcessIntent(engineinput.Intent{Action: engineinput.ActionCycleStyle}); r != ResultEdited {
		t.Errorf("cycle style = %v", r)
	}
	if r := c.ProcessIntent(engineinput.Intent{Action: engineinput.ActionQuit}); r != ResultIgnored {
		t.Errorf("quit = %v, want ignored", r)
	}
	if len(g.Messages) == 0 {
		t.Error("no messages logged")
	}
}
