package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Controller is the per-agent interface the tick manager drives.
type Controller interface {
	Start()
	Stop()
	Tick(dt float64)
}

// TickManager runs all registered agent controllers on a fixed interval.
type TickManager struct {
	interval        time.Duration
	controllers     sync.Map // map[uint32]Controller — objectID → controller
	stopCh          chan struct{}
	controllerCount atomic.Int32 // cached count of controllers (O(1) access)
}

// NewTickManager creates a tick manager with the given tick interval.
func NewTickManager(interval time.Duration) *TickManager {
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Register registers an agent controller and starts it.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	m.controllers.Store(objectID, controller)
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("agent controller registered", "objectID", objectID)
}

// Unregister stops and removes an agent controller.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}

	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("agent controller unregistered", "objectID", objectID)
}

// Start starts the tick loop (blocks until context is canceled or Stop).
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("agent tick manager started", "interval", m.interval)

	dt := m.interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			slog.Info("agent tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("agent tick manager stopped")
			return nil

		case <-ticker.C:
			m.tickAll(dt)
		}
	}
}

// Stop stops the tick loop.
func (m *TickManager) Stop() {
	close(m.stopCh)
}

// tickAll ticks all registered controllers.
func (m *TickManager) tickAll(dt float64) {
	count := 0

	m.controllers.Range(func(key, value any) bool {
		controller := value.(Controller)
		controller.Tick(dt)
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("agent tick completed", "controllers", count)
	}
}

// Count returns the number of registered controllers (O(1) cached count).
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller registered for an object ID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}
