package catalog

import (
	"context"
	"testing"
	"time"
)

func TestLoadGuard_TryAcquireRelease(t *testing.T) {
	g := newLoadGuard()

	if g.Active() {
		t.Fatal("new guard should not be active")
	}
	if !g.TryAcquire() {
		t.Fatal("first TryAcquire failed")
	}
	if !g.Active() {
		t.Error("guard should be active after TryAcquire")
	}
	if g.TryAcquire() {
		t.Error("second TryAcquire should fail while held")
	}

	g.Release()

	if g.Active() {
		t.Error("guard should be idle after Release")
	}
	if !g.TryAcquire() {
		t.Error("TryAcquire after Release failed")
	}
	g.Release()
}

func TestLoadGuard_WaitForDrain(t *testing.T) {
	g := newLoadGuard()
	g.TryAcquire()

	go func() {
		time.Sleep(100 * time.Millisecond)
		g.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := g.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
}

func TestLoadGuard_WaitForDrainTimeout(t *testing.T) {
	g := newLoadGuard()
	g.TryAcquire()
	defer g.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := g.WaitForDrain(ctx); err != context.DeadlineExceeded {
		t.Errorf("WaitForDrain() error = %v, want DeadlineExceeded", err)
	}
}
