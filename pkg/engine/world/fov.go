package world

// FOVRadius is the default reveal radius (Chebyshev distance)
const FOVRadius = 4

// CalculateFOV returns the cells visible from (cx,cy) within radius.
// Uses Bresenham line-of-sight; unoccupied cells block vision.
func CalculateFOV(g *Grid, cx, cy, radius int) []Point {
	if !g.InBounds(cx, cy) {
		return nil
	}

	visible := []Point{{X: cx, Y: cy}}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if chebyshevDist(dx, dy) > radius {
				continue
			}
			x, y := cx+dx, cy+dy
			if !g.InBounds(x, y) {
				continue
			}
			if hasLineOfSight(g, cx, cy, x, y) {
				visible = append(visible, Point{X: x, Y: y})
			}
		}
	}

	return visible
}

// chebyshevDist returns Chebyshev (chessboard) distance for (dx, dy).
func chebyshevDist(dx, dy int) int {
	ax, ay := abs(dx), abs(dy)
	if ax > ay {
		return ax
	}
	return ay
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// hasLineOfSight returns true if every cell strictly between the endpoints is occupied.
func hasLineOfSight(g *Grid, x0, y0, x1, y1 int) bool {
	dx, dy := x1-x0, y1-y0
	ax, ay := abs(dx), abs(dy)
	sx, sy := sign(dx), sign(dy)

	x, y := x0, y0

	if ax >= ay {
		err := 2*ay - ax
		for x != x1 {
			x += sx
			if err > 0 {
				y += sy
				err -= 2 * ax
			}
			err += 2 * ay
			if x == x1 && y == y1 {
				return true
			}
			if !g.IsOccupied(x, y) {
				return false
			}
		}
	} else {
		err := 2*ax - ay
		for y != y1 {
			y += sy
			if err > 0 {
				x += sx
				err -= 2 * ay
			}
			err += 2 * ax
			if x == x1 && y == y1 {
				return true
			}
			if !g.IsOccupied(x, y) {
				return false
			}
		}
	}

	return true
}
