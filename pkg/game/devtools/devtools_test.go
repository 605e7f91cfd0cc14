package devtools

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crawlview/pkg/engine/world"
	"crawlview/pkg/game/state"
	"crawlview/pkg/game/view"
)

func TestDumpPerimeter_Plain(t *testing.T) {
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1, 1}}))
	g.Doors = []*world.Door{{X: 1, Y: 0, Edge: world.West, Locked: true}}
	g.Rebuild()
	g.SetPose(world.Pose{X: 0, Y: 0, Facing: world.East})

	var sb strings.Builder
	if err := DumpPerimeter(&sb, g, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(sb.String(), "\n")
	want := []string{
		"+--+--+",
		"|>>L##|",
		"+--+--+",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(sb.String(), "walls: 6") {
		t.Errorf("summary missing wall count:\n%s", sb.String())
	}
}

func TestDumpPerimeter_ListsDecor(t *testing.T) {
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1}}))
	g.Styles[world.Point{}] = world.StyleRound3
	g.Rebuild()

	var sb strings.Builder
	if err := DumpPerimeter(&sb, g, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "decor 0,0 round3") {
		t.Errorf("decor not listed:\n%s", sb.String())
	}
}

func TestSaveScreenshot(t *testing.T) {
	g := state.NewGame(world.GridFromRows([][]world.CellState{{1}}))
	g.SetPose(world.Pose{})
	path := filepath.Join(t.TempDir(), "shot.png")

	if err := SaveScreenshot(path, g, view.NewScene(view.NewProceduralAtlas()), 64, 48); err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("screenshot size = %v", b)
	}
}
