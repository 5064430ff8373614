package ai

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// fakeController records lifecycle calls.
type fakeController struct {
	started atomic.Bool
	stopped atomic.Bool
	ticks   atomic.Int32
	lastDt  atomic.Value // float64
}

func (c *fakeController) Start() { c.started.Store(true) }
func (c *fakeController) Stop()  { c.stopped.Store(true) }
func (c *fakeController) Tick(dt float64) {
	c.ticks.Add(1)
	c.lastDt.Store(dt)
}

func TestTickManager_RegisterUnregister(t *testing.T) {
	m := NewTickManager(100 * time.Millisecond)
	c := &fakeController{}

	m.Register(7, c)
	if !c.started.Load() {
		t.Error("Register must start the controller")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}

	got, err := m.GetController(7)
	if err != nil {
		t.Fatalf("GetController(7) error: %v", err)
	}
	if got != c {
		t.Error("GetController returned a different controller")
	}

	m.Unregister(7)
	if !c.stopped.Load() {
		t.Error("Unregister must stop the controller")
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d after unregister, want 0", m.Count())
	}

	if _, err := m.GetController(7); err == nil {
		t.Error("GetController after unregister should fail")
	}

	// Unregistering twice is a no-op.
	m.Unregister(7)
	if m.Count() != 0 {
		t.Errorf("Count() = %d after double unregister, want 0", m.Count())
	}
}

func TestTickManager_TickAll(t *testing.T) {
	m := NewTickManager(50 * time.Millisecond)
	a := &fakeController{}
	b := &fakeController{}
	m.Register(1, a)
	m.Register(2, b)

	m.tickAll(0.05)
	m.tickAll(0.05)

	if got := a.ticks.Load(); got != 2 {
		t.Errorf("controller a ticked %d times, want 2", got)
	}
	if got := b.ticks.Load(); got != 2 {
		t.Errorf("controller b ticked %d times, want 2", got)
	}
	if dt := a.lastDt.Load().(float64); dt != 0.05 {
		t.Errorf("tick dt = %g, want 0.05", dt)
	}
}

func TestTickManager_StartStopsOnCancel(t *testing.T) {
	m := NewTickManager(5 * time.Millisecond)
	c := &fakeController{}
	m.Register(1, c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	// Let a few ticks run, then cancel.
	time.Sleep(40 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}

	if c.ticks.Load() == 0 {
		t.Error("controller never ticked while manager was running")
	}
}

func TestTickManager_Stop(t *testing.T) {
	m := NewTickManager(5 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- m.Start(context.Background()) }()

	time.Sleep(15 * time.Millisecond)
	m.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v after Stop, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
