package wake

import (
	"context"
	"sync/atomic"
)

// KeepAlive belongs to a single page view. Its first HandleScroll starts a
// wake cycle over the whole registry; every later call does nothing.
type KeepAlive struct {
	registry   *Registry
	dispatcher *Dispatcher
	observer   Observer

	fired    atomic.Bool
	detached atomic.Bool
}

// NewKeepAlive arms a latch for one page view.
func NewKeepAlive(registry *Registry, dispatcher *Dispatcher) *KeepAlive {
	return &KeepAlive{
		registry:   registry,
		dispatcher: dispatcher,
		observer:   dispatcher.observer,
	}
}

// HandleScroll fires the wake cycle on the first call after arming.
// It never blocks on the network.
func (k *KeepAlive) HandleScroll(ctx context.Context) {
	if k.detached.Load() {
		return
	}
	if !k.fired.CompareAndSwap(false, true) {
		return
	}
	k.observer.CycleStarted()
	k.dispatcher.Fire(ctx, k.registry.URLs())
}

// Detach disarms the handler when the page view goes away, whether or not
// it already fired. Probes already sent are left to finish.
func (k *KeepAlive) Detach() {
	k.detached.Store(true)
}

// Fired reports whether the wake cycle has run.
func (k *KeepAlive) Fired() bool {
	return k.fired.Load()
}

// Detached reports whether Detach was called.
func (k *KeepAlive) Detached() bool {
	return k.detached.Load()
}
