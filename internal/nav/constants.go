package nav

import "math"

// Cell states in the occupancy grid.
const (
	cellWalkable uint8 = 0
	cellBlocked  uint8 = 1
)

// Movement costs for the 8-directional model.
const (
	CostOrthogonal = 1.0
	CostDiagonal   = math.Sqrt2
)

// Path following configuration.
const (
	// ArrivalRadius is the horizontal distance within which a mover is
	// considered to have reached a waypoint (world units).
	ArrivalRadius = 0.5

	// directionEpsilon guards against normalizing a near-zero direction
	// when the mover already sits on its target.
	directionEpsilon = 0.01
)
