package state

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"crawlview/pkg/engine/world"
)

var (
	// ErrJaggedGrid is returned when grid rows differ in length
	ErrJaggedGrid = errors.New("grid rows have different lengths")
	// ErrNoDungeon is returned when a file holds no grid
	ErrNoDungeon = errors.New("no dungeon grid")
	// ErrBadEdge is returned for an edge name other than N, E, S or W
	ErrBadEdge = errors.New("bad edge")
)

// DungeonFile is the YAML document describing a dungeon.
//
// Grid rows use '.' for empty, '#' for room and '=' for corridor.
type DungeonFile struct {
	Name   string            `yaml:"name"`
	Grid   []string          `yaml:"grid"`
	Styles map[string]string `yaml:"styles,omitempty"`
	Doors  []DoorSpec        `yaml:"doors,omitempty"`
	Walls  []EdgeSpec        `yaml:"walls,omitempty"`
	Start  *PoseSpec         `yaml:"start,omitempty"`
	Light  bool              `yaml:"light,omitempty"`
}

// EdgeSpec addresses one cell edge
type EdgeSpec struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Edge string `yaml:"edge"`
}

// DoorSpec is a door in a dungeon file
type DoorSpec struct {
	EdgeSpec `yaml:",inline"`
	Locked   bool   `yaml:"locked,omitempty"`
	Opened   bool   `yaml:"opened,omitempty"`
	Type     string `yaml:"type,omitempty"`
}

// PoseSpec is the starting pose
type PoseSpec struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

// LoadDungeon reads and validates a dungeon file from disk.
func LoadDungeon(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dungeon: %w", err)
	}
	defer f.Close()

	g, err := ReadDungeon(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("dungeon loaded", "path", path, "name", g.Name,
		"cols", g.Grid.Cols(), "rows", g.Grid.Rows(), "walls", g.Index.WallCount())
	return g, nil
}

// ReadDungeon decodes a dungeon document.
func ReadDungeon(r io.Reader) (*Game, error) {
	var df DungeonFile
	if err := yaml.NewDecoder(r).Decode(&df); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoDungeon
		}
		return nil, fmt.Errorf("decoding dungeon: %w", err)
	}
	return df.Build()
}

// Build validates the document and turns it into a Game.
func (df *DungeonFile) Build() (*Game, error) {
	grid, err := parseGrid(df.Grid)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Name:       df.Name,
		Grid:       grid,
		Styles:     make(world.StyleMap, len(df.Styles)),
		Light:      df.Light,
		Discovered: newDiscovered(),
		Messages:   make([]string, 0),
	}

	for key, tag := range df.Styles {
		p, err := world.ParsePoint(key)
		if err != nil {
			return nil, err
		}
		s, err := world.ParseStyle(tag)
		if err != nil {
			return nil, fmt.Errorf("style at %s: %w", key, err)
		}
		g.Styles[p] = s
	}

	for _, ds := range df.Doors {
		e, err := ds.edge()
		if err != nil {
			return nil, err
		}
		g.Doors = append(g.Doors, &world.Door{
			X: ds.X, Y: ds.Y, Edge: e,
			Locked: ds.Locked, Opened: ds.Opened, Type: ds.Type,
		})
	}

	for _, ws := range df.Walls {
		e, err := ws.edge()
		if err != nil {
			return nil, err
		}
		g.AuthoredWalls = append(g.AuthoredWalls, world.WallSegment{X: ws.X, Y: ws.Y, Edge: e})
	}

	g.Rebuild()

	if df.Start != nil {
		facing, ok := world.ParseEdge(df.Start.Facing)
		if !ok && df.Start.Facing != "" {
			return nil, fmt.Errorf("start facing %q: %w", df.Start.Facing, ErrBadEdge)
		}
		g.SetPose(world.Pose{X: df.Start.X, Y: df.Start.Y, Facing: facing})
	}
	return g, nil
}

func (s EdgeSpec) edge() (world.Edge, error) {
	e, ok := world.ParseEdge(s.Edge)
	if !ok {
		return e, fmt.Errorf("edge %q at %d,%d: %w", s.Edge, s.X, s.Y, ErrBadEdge)
	}
	return e, nil
}

func parseGrid(rows []string) (*world.Grid, error) {
	if len(rows) == 0 {
		return nil, ErrNoDungeon
	}
	width := len(rows[0])
	cells := make([][]world.CellState, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrJaggedGrid)
		}
		cells[y] = make([]world.CellState, width)
		for x, ch := range row {
			switch ch {
			case '#', '1':
				cells[y][x] = world.Room
			case '=', '2':
				cells[y][x] = world.Corridor
			default:
				cells[y][x] = world.Empty
			}
		}
	}
	if width == 0 {
		return nil, ErrNoDungeon
	}
	return world.GridFromRows(cells), nil
}

// Encode renders the game back into a dungeon document. Derived walls are
// not written; only authored ones are.
func (g *Game) Encode() *DungeonFile {
	df := &DungeonFile{Name: g.Name, Light: g.Light}

	for y := 0; y < g.Grid.Rows(); y++ {
		var b strings.Builder
		for x := 0; x < g.Grid.Cols(); x++ {
			switch g.Grid.At(x, y) {
			case world.Room:
				b.WriteByte('#')
			case world.Corridor:
				b.WriteByte('=')
			default:
				b.WriteByte('.')
			}
		}
		df.Grid = append(df.Grid, b.String())
	}

	if len(g.Styles) > 0 {
		df.Styles = make(map[string]string, len(g.Styles))
		for p, s := range g.Styles {
			df.Styles[p.String()] = string(s)
		}
	}
	for _, d := range g.Doors {
		df.Doors = append(df.Doors, DoorSpec{
			EdgeSpec: EdgeSpec{X: d.X, Y: d.Y, Edge: d.Edge.String()},
			Locked:   d.Locked, Opened: d.Opened, Type: d.Type,
		})
	}
	for _, w := range g.AuthoredWalls {
		df.Walls = append(df.Walls, EdgeSpec{X: w.X, Y: w.Y, Edge: w.Edge.String()})
	}
	if g.Pose != nil {
		df.Start = &PoseSpec{X: g.Pose.X, Y: g.Pose.Y, Facing: g.Pose.Facing.String()}
	}
	return df
}

// WriteDungeon encodes the game as YAML
func WriteDungeon(w io.Writer, g *Game) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.Encode()); err != nil {
		return fmt.Errorf("encoding dungeon: %w", err)
	}
	return enc.Close()
}
