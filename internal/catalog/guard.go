package catalog

// guard.go keeps at most one catalog load in flight.
//
// A trigger that arrives while a load is running is suppressed rather than
// queued: two loads racing to completion would leave an arbitrary winner.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoadInProgress is returned when a load is requested while another one
// is still running.
var ErrLoadInProgress = errors.New("catalog load already in progress")

type loadGuard struct {
	slot chan struct{}

	mu     sync.RWMutex
	active int
}

func newLoadGuard() *loadGuard {
	return &loadGuard{slot: make(chan struct{}, 1)}
}

// TryAcquire takes the slot without blocking. Callers that get true must
// call Release exactly once.
func (g *loadGuard) TryAcquire() bool {
	select {
	case g.slot <- struct{}{}:
		g.mu.Lock()
		g.active++
		g.mu.Unlock()
		return true
	default:
		return false
	}
}

// Release frees the slot taken by TryAcquire.
func (g *loadGuard) Release() {
	g.mu.Lock()
	g.active--
	g.mu.Unlock()

	<-g.slot
}

// Active reports whether a load currently holds the slot.
func (g *loadGuard) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active > 0
}

// WaitForDrain blocks until no load holds the slot or ctx is done.
func (g *loadGuard) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if !g.Active() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
