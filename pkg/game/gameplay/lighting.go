package gameplay

import (
	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
)

// LitRadius is how far the viewer sees with the light raised. Without it the
// viewer sees world.FOVRadius.
const LitRadius = world.FOVRadius + 2

// UpdateExploration marks the cells the viewer's light reaches as discovered
// and returns how many were new. It does nothing while the light is down.
func UpdateExploration(g *state.Game) int {
	if g.Pose == nil || !g.Light {
		return 0
	}
	n := 0
	for _, pt := range world.CalculateFOV(g.Grid, g.Pose.X, g.Pose.Y, LitRadius) {
		if !g.Discovered.Has(pt) {
			g.Discovered.Put(pt)
			n++
		}
	}
	return n
}
