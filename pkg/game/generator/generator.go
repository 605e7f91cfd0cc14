package generator

import (
	"math/rand"

	"crawlview/pkg/game/state"
)

// DungeonGenerator creates a playable dungeon from a random source
type DungeonGenerator interface {
	Generate(rng *rand.Rand) *state.Game
	Name() string
}

// DefaultGenerator is the generator used when no dungeon file is given
var DefaultGenerator DungeonGenerator = NewBSP(40, 24)

// FromSeed runs the default generator with a fixed seed
func FromSeed(seed int64) *state.Game {
	return DefaultGenerator.Generate(rand.New(rand.NewSource(seed)))
}
