package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/udisondev/navcore/internal/nav"
)

const (
	// wanderRate gives a 1/30 chance of starting a wander per tick (~3.3%).
	wanderRate = 30
)

// Navigator plans paths between world positions. *world.Manager satisfies it.
type Navigator interface {
	FindPath(start, goal nav.Vec3) []nav.Vec3
}

// Agent is a mover driven by the navigation core: it plans paths through
// a Navigator and advances along them one tick at a time. When idle it
// occasionally wanders to a random point near its spawn anchor.
type Agent struct {
	id        uint32
	name      string
	navigator Navigator
	isRunning atomic.Bool

	speed       float64
	wanderRange float64

	mu       sync.Mutex
	pos      nav.Vec3
	spawn    nav.Vec3
	follower *nav.Follower

	movesCompleted atomic.Int64
}

// NewAgent creates an agent at the given spawn position.
func NewAgent(id uint32, name string, spawn nav.Vec3, speed, wanderRange float64, navigator Navigator) *Agent {
	return &Agent{
		id:          id,
		name:        name,
		navigator:   navigator,
		speed:       speed,
		wanderRange: wanderRange,
		pos:         spawn,
		spawn:       spawn,
	}
}

// ID returns the agent's object ID.
func (a *Agent) ID() uint32 { return a.id }

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Position returns the agent's current world position.
func (a *Agent) Position() nav.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

// IsMoving reports whether the agent is currently following a path.
func (a *Agent) IsMoving() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.follower != nil
}

// MovesCompleted returns how many paths the agent has finished.
func (a *Agent) MovesCompleted() int64 {
	return a.movesCompleted.Load()
}

// Start starts the agent controller.
func (a *Agent) Start() {
	a.isRunning.Store(true)
	slog.Debug("agent started", "agent", a.name, "objectID", a.id)
}

// Stop stops the agent controller and abandons any active path.
func (a *Agent) Stop() {
	a.isRunning.Store(false)
	a.mu.Lock()
	a.follower = nil
	a.mu.Unlock()
	slog.Debug("agent stopped", "agent", a.name, "objectID", a.id)
}

// MoveTo plans a path from the current position to goal and starts
// following it. Returns false when no path exists — "no movement possible
// this attempt" is a normal outcome, not an error.
func (a *Agent) MoveTo(goal nav.Vec3) bool {
	a.mu.Lock()
	start := a.pos
	a.mu.Unlock()

	path := a.navigator.FindPath(start, goal)
	if len(path) == 0 {
		if IsDebugEnabled() {
			slog.Debug("agent move rejected (no path)",
				"agent", a.name,
				"goalX", goal.X,
				"goalZ", goal.Z)
		}
		return false
	}

	a.mu.Lock()
	a.follower = nav.NewFollower(path)
	a.mu.Unlock()

	if IsDebugEnabled() {
		slog.Debug("agent path planned",
			"agent", a.name,
			"waypoints", len(path),
			"goalX", goal.X,
			"goalZ", goal.Z)
	}
	return true
}

// Tick advances the agent by one simulation step of dt seconds.
func (a *Agent) Tick(dt float64) {
	if !a.isRunning.Load() {
		return
	}

	a.mu.Lock()
	follower := a.follower
	a.mu.Unlock()

	if follower == nil {
		a.tryWander()
		return
	}

	a.mu.Lock()
	vel := follower.Update(a.pos, a.speed, dt)
	a.pos = a.pos.Add(vel.Scale(dt))
	done := follower.IsComplete()
	if done {
		a.follower = nil
	}
	a.mu.Unlock()

	if done {
		a.movesCompleted.Add(1)
		if IsDebugEnabled() {
			slog.Debug("agent arrived",
				"agent", a.name,
				"moves", a.movesCompleted.Load())
		}
	}
}

// tryWander occasionally starts a move to a random point near spawn.
func (a *Agent) tryWander() {
	if a.wanderRange <= 0 {
		return
	}

	// 1/30 chance per tick (~3.3%)
	if rand.IntN(wanderRate) != 0 {
		return
	}

	a.mu.Lock()
	spawn := a.spawn
	a.mu.Unlock()

	goal := nav.Vec3{
		X: spawn.X + (rand.Float64()*2-1)*a.wanderRange,
		Y: spawn.Y,
		Z: spawn.Z + (rand.Float64()*2-1)*a.wanderRange,
	}

	if a.MoveTo(goal) && IsDebugEnabled() {
		slog.Debug("agent wandering",
			"agent", a.name,
			"toX", goal.X,
			"toZ", goal.Z)
	}
}
