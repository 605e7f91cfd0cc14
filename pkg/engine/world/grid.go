package world

// CellState is the occupancy value of a grid cell
type CellState int

// Cell states as authored by the dungeon owner
const (
	Empty    CellState = 0
	Room     CellState = 1
	Corridor CellState = 2
)

// Grid is a rectangular array of cell states indexed [y][x].
// Rectangularity is the owner's responsibility; the engine assumes it.
type Grid struct {
	cells [][]CellState
	rows  int
	cols  int
}

// NewGrid creates an empty grid with the given dimensions
func NewGrid(cols, rows int) *Grid {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	cells := make([][]CellState, rows)
	for y := range cells {
		cells[y] = make([]CellState, cols)
	}
	return &Grid{cells: cells, rows: rows, cols: cols}
}

// GridFromRows wraps existing rows. The width is taken from the first row.
func GridFromRows(rows [][]CellState) *Grid {
	g := &Grid{cells: rows, rows: len(rows)}
	if len(rows) > 0 {
		g.cols = len(rows[0])
	}
	return g
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// InBounds checks if an x/y position is within grid bounds
func (g *Grid) InBounds(x, y int) bool {
	return g != nil && y >= 0 && y < g.rows && x >= 0 && x < g.cols
}

// At returns the state at x/y, or Empty if out of bounds
func (g *Grid) At(x, y int) CellState {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y][x]
}

// Set stores a state at x/y. Returns false if out of bounds.
func (g *Grid) Set(x, y int, s CellState) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y][x] = s
	return true
}

// IsOccupied returns true for room and corridor cells
func (g *Grid) IsOccupied(x, y int) bool {
	s := g.At(x, y)
	return s == Room || s == Corridor
}

// Neighbor returns the coordinates across the given edge
func Neighbor(x, y int, e Edge) (int, int) {
	dx, dy := e.Delta()
	return x + dx, y + dy
}

// ForEachCell iterates over all cells in raster order
func (g *Grid) ForEachCell(fn func(x, y int, s CellState)) {
	if g == nil {
		return
	}
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			fn(x, y, g.cells[y][x])
		}
	}
}
