// Package shutdown drains the server in stages once it is asked to stop.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrAlreadyClosed   = errors.New("shutdown already ran")
)

// Stage orders hooks. Lower stages run first; hooks within a stage run in
// registration order.
type Stage int

const (
	// StageReadiness flips readiness so load balancers stop routing here.
	StageReadiness Stage = 0
	// StageHTTP stops accepting requests.
	StageHTTP Stage = 100
	// StageLive ends live page views.
	StageLive Stage = 200
	// StageWake waits for in-flight wake probes.
	StageWake Stage = 300
)

type hook struct {
	name  string
	stage Stage
	fn    func(context.Context) error
}

// Observer is told how each hook went.
type Observer func(name string, err error, d time.Duration)

// Handler runs the registered hooks once, under one deadline.
type Handler struct {
	timeout  time.Duration
	observer Observer

	mu     sync.Mutex
	hooks  []hook
	closed bool
	done   chan struct{}
}

// NewHandler creates a handler whose whole run is bounded by timeout.
// observer may be nil.
func NewHandler(timeout time.Duration, observer Observer) *Handler {
	return &Handler{
		timeout:  timeout,
		observer: observer,
		done:     make(chan struct{}),
	}
}

// Add registers fn to run in stage.
func (h *Handler) Add(name string, stage Stage, fn func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook{name: name, stage: stage, fn: fn})
}

// Shutdown runs every hook. A failing hook does not stop later ones; the
// deadline does.
func (h *Handler) Shutdown(parent context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrAlreadyClosed
	}
	h.closed = true
	close(h.done)
	hooks := append([]hook(nil), h.hooks...)
	h.mu.Unlock()

	sort.SliceStable(hooks, func(i, j int) bool { return hooks[i].stage < hooks[j].stage })

	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	var errs []error
	for _, hk := range hooks {
		start := time.Now()
		err := hk.fn(ctx)
		if h.observer != nil {
			h.observer(hk.name, err, time.Since(start))
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", hk.name, err))
		}
		if ctx.Err() != nil {
			errs = append(errs, ErrShutdownTimeout)
			break
		}
	}
	return errors.Join(errs...)
}

// Done is closed once Shutdown has started.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
