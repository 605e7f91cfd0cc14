package state

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"crawlview/pkg/engine/geometry"
	"crawlview/pkg/engine/perimeter"
	"crawlview/pkg/engine/world"
)

// Game owns the dungeon geometry and the viewer pose. Geometry mutations
// re-derive the perimeter so walls, doors and resolvers never go stale.
type Game struct {
	Name string

	Grid   *world.Grid
	Styles world.StyleMap
	Doors  []*world.Door

	// AuthoredWalls are walls placed by hand, unioned with the derived ones
	AuthoredWalls []world.WallSegment

	// Pose is nil until the party has been placed
	Pose *world.Pose

	Light bool

	Discovered mapset.Set[world.Point]

	Perimeter perimeter.Result
	Index     *world.BoundaryIndex
	Resolver  *geometry.Resolver

	Messages []string

	// Revision increases on every geometry rebuild
	Revision int
}

// NewGame creates a game over grid with no styles, doors or pose
func NewGame(grid *world.Grid) *Game {
	g := &Game{
		Grid:       grid,
		Styles:     make(world.StyleMap),
		Discovered: newDiscovered(),
		Messages:   make([]string, 0),
	}
	g.Rebuild()
	return g
}

func newDiscovered() mapset.Set[world.Point] {
	return mapset.New[world.Point]()
}

// Rebuild re-derives the perimeter and refreshes the boundary index and resolver.
func (g *Game) Rebuild() {
	g.Perimeter = perimeter.BuildAllPerimeters(g.Grid, g.Styles, perimeter.Options{Fallback: true})

	walls := make([]world.WallSegment, 0, len(g.Perimeter.Walls)+len(g.AuthoredWalls))
	walls = append(walls, g.Perimeter.Walls...)
	walls = append(walls, g.AuthoredWalls...)

	g.Index = world.NewBoundaryIndex(walls, g.Doors)
	g.Resolver = geometry.NewResolver(g.Grid, g.Index)
	g.Revision++

	slog.Debug("perimeter rebuilt",
		"regions", len(g.Perimeter.Regions),
		"walls", g.Index.WallCount(),
		"decor", len(g.Perimeter.Decor),
		"revision", g.Revision)
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// SetPose commits a new viewer pose and reveals the cells it can see
func (g *Game) SetPose(p world.Pose) {
	g.Pose = &p
	for _, pt := range world.CalculateFOV(g.Grid, p.X, p.Y, world.FOVRadius) {
		g.Discovered.Put(pt)
	}
}

// IsDiscovered reports whether the cell has been seen
func (g *Game) IsDiscovered(x, y int) bool {
	return g.Discovered.Has(world.Point{X: x, Y: y})
}

// FacedCell returns the cell in front of the viewer
func (g *Game) FacedCell() (world.Point, bool) {
	if g.Pose == nil {
		return world.Point{}, false
	}
	x, y := world.Neighbor(g.Pose.X, g.Pose.Y, g.Pose.Facing)
	return world.Point{X: x, Y: y}, g.Grid.InBounds(x, y)
}

// CycleStyle advances the shape of the faced cell, or the viewer's own cell
// when nothing occupied is ahead. Returns the new style.
func (g *Game) CycleStyle() (world.Point, world.Style, bool) {
	if g.Pose == nil {
		return world.Point{}, world.StyleNone, false
	}
	target, ok := g.FacedCell()
	if !ok || !g.Grid.IsOccupied(target.X, target.Y) {
		target = world.Point{X: g.Pose.X, Y: g.Pose.Y}
	}
	next := world.NextStyle(g.Styles.At(target.X, target.Y))
	g.Styles[target] = next
	g.Rebuild()
	return target, next, true
}

// ToggleDoor opens or closes the door on the faced edge. Locked doors stay shut.
func (g *Game) ToggleDoor() (*world.Door, bool) {
	if g.Pose == nil {
		return nil, false
	}
	door := g.Index.DoorAt(g.Pose.X, g.Pose.Y, g.Pose.Facing)
	if door == nil || door.Locked {
		return door, false
	}
	door.Opened = !door.Opened
	return door, true
}

// ToggleLight switches the light source on or off
func (g *Game) ToggleLight() bool {
	g.Light = !g.Light
	return g.Light
}
