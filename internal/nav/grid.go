package nav

import (
	"fmt"
	"math"
)

// Grid is a 2D occupancy grid over a bounded world region.
// Cell (0,0) covers the world rectangle [0, cellSize) x [0, cellSize);
// dimensions and cell size are fixed at construction.
//
// Not safe for concurrent mutation: obstacle marking must not run while a
// search is in progress. One authoritative goroutine owns all writes
// between search rounds (same ownership contract as world region data).
type Grid struct {
	width    int
	height   int
	cellSize float64
	minX     float64
	minZ     float64
	cells    []uint8 // indexed gz*width+gx
}

// NewGrid creates a grid with all cells walkable.
// Returns an error for non-positive width, height, or cell size —
// these indicate programmer error, not a runtime search outcome.
func NewGrid(width, height int, cellSize float64) (*Grid, error) {
	if width <= 0 {
		return nil, fmt.Errorf("grid width must be > 0, got %d", width)
	}
	if height <= 0 {
		return nil, fmt.Errorf("grid height must be > 0, got %d", height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("grid cell size must be > 0, got %g", cellSize)
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]uint8, width*height),
	}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// CellSize returns the size of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// WorldToGrid converts a world position to grid coordinates.
// The result is not clamped; callers must bounds-check before indexing.
func (g *Grid) WorldToGrid(x, z float64) (int, int) {
	gx := int(math.Floor((x - g.minX) / g.cellSize))
	gz := int(math.Floor((z - g.minZ) / g.cellSize))
	return gx, gz
}

// GridToWorld converts grid coordinates to the world position of the
// cell center.
func (g *Grid) GridToWorld(gx, gz int) (float64, float64) {
	x := g.minX + (float64(gx)+0.5)*g.cellSize
	z := g.minZ + (float64(gz)+0.5)*g.cellSize
	return x, z
}

// SetBlocked marks a single cell as blocked or walkable.
// Out-of-bounds coordinates are silently ignored so that callers may mark
// regions that only partially overlap the grid.
func (g *Grid) SetBlocked(gx, gz int, blocked bool) {
	if gx < 0 || gx >= g.width || gz < 0 || gz >= g.height {
		return
	}
	if blocked {
		g.cells[gz*g.width+gx] = cellBlocked
	} else {
		g.cells[gz*g.width+gx] = cellWalkable
	}
}

// IsWalkable reports whether a cell can be entered.
// Out-of-bounds coordinates are non-walkable: the grid boundary is an
// implicit wall.
func (g *Grid) IsWalkable(gx, gz int) bool {
	if gx < 0 || gx >= g.width || gz < 0 || gz >= g.height {
		return false
	}
	return g.cells[gz*g.width+gx] == cellWalkable
}

// BlockRect blocks every cell in the inclusive rectangle spanned by the
// two world-space corners. Corner order is irrelevant.
func (g *Grid) BlockRect(minX, minZ, maxX, maxZ float64) {
	gx1, gz1 := g.WorldToGrid(minX, minZ)
	gx2, gz2 := g.WorldToGrid(maxX, maxZ)

	for gx := min(gx1, gx2); gx <= max(gx1, gx2); gx++ {
		for gz := min(gz1, gz2); gz <= max(gz1, gz2); gz++ {
			g.SetBlocked(gx, gz, true)
		}
	}
}

// BlockCircle blocks a discrete disk around a world-space center.
// The grid radius is floor(radius/cellSize)+1, so the disk slightly
// overblocks the exact circle.
func (g *Grid) BlockCircle(centerX, centerZ, radius float64) {
	gx, gz := g.WorldToGrid(centerX, centerZ)
	gridRadius := int(radius/g.cellSize) + 1

	for dx := -gridRadius; dx <= gridRadius; dx++ {
		for dz := -gridRadius; dz <= gridRadius; dz++ {
			if dx*dx+dz*dz <= gridRadius*gridRadius {
				g.SetBlocked(gx+dx, gz+dz, true)
			}
		}
	}
}

// FindPath finds the shortest walkable route from start to goal using A*.
// Returns world-space waypoints (cell centers) from start cell to goal
// cell inclusive, with every waypoint carrying the Y of start.
// Returns nil if start or goal is out of bounds or blocked, or if no
// connecting route exists — an empty path is a normal outcome, not an error.
func (g *Grid) FindPath(start, goal Vec3) []Vec3 {
	sx, sz := g.WorldToGrid(start.X, start.Z)
	gx, gz := g.WorldToGrid(goal.X, goal.Z)

	cells := g.searchPath(Coord{sx, sz}, Coord{gx, gz})
	if len(cells) == 0 {
		return nil
	}

	path := make([]Vec3, 0, len(cells))
	for _, c := range cells {
		wx, wz := g.GridToWorld(c.X, c.Z)
		path = append(path, Vec3{X: wx, Y: start.Y, Z: wz})
	}
	return path
}
