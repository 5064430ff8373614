package model

import "fmt"

// Obstacle shapes stored in the map_obstacles table.
const (
	ObstacleRect   = "rect"
	ObstacleCircle = "circle"
)

// Obstacle is a static blocked region of a map: either an axis-aligned
// rectangle ((X1,Z1)-(X2,Z2)) or a circle (center (X1,Z1), Radius).
// Stamped onto the navigation grids at load time.
type Obstacle struct {
	ID     int64
	MapID  int32
	Shape  string
	X1, Z1 float64
	X2, Z2 float64
	Radius float64
}

// NewRectObstacle creates a rectangular obstacle.
func NewRectObstacle(mapID int32, minX, minZ, maxX, maxZ float64) Obstacle {
	return Obstacle{
		MapID: mapID,
		Shape: ObstacleRect,
		X1:    minX,
		Z1:    minZ,
		X2:    maxX,
		Z2:    maxZ,
	}
}

// NewCircleObstacle creates a circular obstacle.
func NewCircleObstacle(mapID int32, centerX, centerZ, radius float64) Obstacle {
	return Obstacle{
		MapID:  mapID,
		Shape:  ObstacleCircle,
		X1:     centerX,
		Z1:     centerZ,
		Radius: radius,
	}
}

// Validate checks shape consistency before persisting.
func (o Obstacle) Validate() error {
	switch o.Shape {
	case ObstacleRect:
		return nil
	case ObstacleCircle:
		if o.Radius <= 0 {
			return fmt.Errorf("circle obstacle radius must be > 0, got %g", o.Radius)
		}
		return nil
	default:
		return fmt.Errorf("unknown obstacle shape %q", o.Shape)
	}
}
