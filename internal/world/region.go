package world

import (
	"fmt"
	"math"
	"sync"

	"github.com/udisondev/navcore/internal/nav"
)

// RegionID indexes a navigable region in the world plane.
type RegionID struct {
	X, Z int
}

// Region is one navigable area: an independent occupancy grid anchored at
// a world-space origin. Grids never resize; a world larger than one grid
// is modeled as multiple regions addressed by RegionID.
type Region struct {
	id      RegionID
	grid    *nav.Grid
	originX float64
	originZ float64
}

// ID returns the region index.
func (r *Region) ID() RegionID { return r.id }

// Grid returns the region's occupancy grid.
func (r *Region) Grid() *nav.Grid { return r.grid }

// Origin returns the world position of the region's grid origin.
func (r *Region) Origin() (float64, float64) { return r.originX, r.originZ }

// Manager owns the set of loaded regions and routes navigation queries by
// world position. Region loading and obstacle marking are write
// operations; pathfinding is read-only. Writers must not run concurrently
// with searches (same ownership contract as nav.Grid).
type Manager struct {
	regionCells int
	cellSize    float64
	regionSize  float64 // world units per region side

	mu      sync.RWMutex
	regions map[RegionID]*Region
}

// NewManager creates a region manager where every region is a square grid
// of regionCells x regionCells cells.
func NewManager(regionCells int, cellSize float64) (*Manager, error) {
	if regionCells <= 0 {
		return nil, fmt.Errorf("region cells must be > 0, got %d", regionCells)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be > 0, got %g", cellSize)
	}
	return &Manager{
		regionCells: regionCells,
		cellSize:    cellSize,
		regionSize:  float64(regionCells) * cellSize,
		regions:     make(map[RegionID]*Region),
	}, nil
}

// RegionIDAt converts a world position to a region index.
func (m *Manager) RegionIDAt(x, z float64) RegionID {
	return RegionID{
		X: int(math.Floor(x / m.regionSize)),
		Z: int(math.Floor(z / m.regionSize)),
	}
}

// LoadRegion returns the region with the given ID, creating it with an
// all-walkable grid on first use.
func (m *Manager) LoadRegion(id RegionID) (*Region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.regions[id]; ok {
		return r, nil
	}

	grid, err := nav.NewGrid(m.regionCells, m.regionCells, m.cellSize)
	if err != nil {
		return nil, fmt.Errorf("creating grid for region %v: %w", id, err)
	}

	r := &Region{
		id:      id,
		grid:    grid,
		originX: float64(id.X) * m.regionSize,
		originZ: float64(id.Z) * m.regionSize,
	}
	m.regions[id] = r
	return r, nil
}

// RegionAt returns the loaded region containing the world position.
func (m *Manager) RegionAt(x, z float64) (*Region, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.regions[m.RegionIDAt(x, z)]
	return r, ok
}

// Count returns the number of loaded regions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.regions)
}

// BlockRect blocks a world-space rectangle in every loaded region it
// overlaps. Each region clips the rectangle to its own bounds.
func (m *Manager) BlockRect(minX, minZ, maxX, maxZ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	loX, hiX := math.Min(minX, maxX), math.Max(minX, maxX)
	loZ, hiZ := math.Min(minZ, maxZ), math.Max(minZ, maxZ)

	for _, r := range m.regions {
		if !r.overlaps(loX, loZ, hiX, hiZ, m.regionSize) {
			continue
		}
		r.grid.BlockRect(loX-r.originX, loZ-r.originZ, hiX-r.originX, hiZ-r.originZ)
	}
}

// BlockCircle blocks a world-space disk in every loaded region its
// bounding box overlaps.
func (m *Manager) BlockCircle(centerX, centerZ, radius float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.regions {
		if !r.overlaps(centerX-radius, centerZ-radius, centerX+radius, centerZ+radius, m.regionSize) {
			continue
		}
		r.grid.BlockCircle(centerX-r.originX, centerZ-r.originZ, radius)
	}
}

// FindPath plans a path between two world positions. Both endpoints must
// fall inside the same loaded region; cross-region routing is not
// supported and yields an empty path, like any other unreachable goal.
func (m *Manager) FindPath(start, goal nav.Vec3) []nav.Vec3 {
	startID := m.RegionIDAt(start.X, start.Z)
	if startID != m.RegionIDAt(goal.X, goal.Z) {
		return nil
	}

	m.mu.RLock()
	r, ok := m.regions[startID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	local := r.grid.FindPath(
		nav.Vec3{X: start.X - r.originX, Y: start.Y, Z: start.Z - r.originZ},
		nav.Vec3{X: goal.X - r.originX, Y: goal.Y, Z: goal.Z - r.originZ},
	)
	if len(local) == 0 {
		return nil
	}

	path := make([]nav.Vec3, len(local))
	for i, wp := range local {
		path[i] = nav.Vec3{X: wp.X + r.originX, Y: wp.Y, Z: wp.Z + r.originZ}
	}
	return path
}

// overlaps reports whether the region's world bounds intersect the given
// axis-aligned rectangle.
func (r *Region) overlaps(loX, loZ, hiX, hiZ, size float64) bool {
	return hiX >= r.originX && loX < r.originX+size &&
		hiZ >= r.originZ && loZ < r.originZ+size
}
