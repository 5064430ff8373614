package nav

// Follower drives a mover along a computed waypoint path.
// It is a per-mover helper: create one per path, discard it once
// IsComplete reports true or the path is abandoned.
//
// Follower never times out on its own — detecting a stuck mover is the
// owning AI's watchdog responsibility.
type Follower struct {
	path      []Vec3
	waypoint  int
	completed bool
}

// NewFollower creates a follower for the given waypoint sequence.
// An empty path is complete immediately.
func NewFollower(path []Vec3) *Follower {
	return &Follower{
		path:      path,
		completed: len(path) == 0,
	}
}

// Update advances path following by one simulation tick and returns the
// velocity the mover should apply. The Y component of the velocity is
// always zero; vertical placement (terrain snapping) is the caller's job.
//
// When the mover is within ArrivalRadius of the current waypoint the
// follower advances to the next one and steers toward it on the same
// tick. After the final waypoint it returns a zero vector forever.
func (f *Follower) Update(current Vec3, speed, deltaTime float64) Vec3 {
	_ = deltaTime // velocity is returned per tick; integration is the caller's job

	if f.completed {
		return Vec3{}
	}

	target := f.path[f.waypoint]
	if current.DistXZ(target) < ArrivalRadius {
		f.waypoint++
		if f.waypoint >= len(f.path) {
			f.completed = true
			return Vec3{}
		}
		target = f.path[f.waypoint]
	}

	dir := Vec3{X: target.X - current.X, Z: target.Z - current.Z}
	length := dir.Length()
	if length <= directionEpsilon {
		// Already on target to floating-point precision.
		return Vec3{}
	}
	return dir.Scale(speed / length)
}

// IsComplete reports whether the final waypoint has been reached.
func (f *Follower) IsComplete() bool {
	return f.completed
}

// Progress returns path progress in [0,1]; 1.0 for an empty path.
func (f *Follower) Progress() float64 {
	if len(f.path) == 0 {
		return 1.0
	}
	return float64(f.waypoint) / float64(len(f.path))
}
