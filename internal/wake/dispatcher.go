package wake

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/northbeam/website/pkg/logging"
)

// Probe is a single wake request. Nothing about it is kept once it is sent.
type Probe struct {
	URL string
}

// Observer is told about wake cycles and probe outcomes.
type Observer interface {
	CycleStarted()
	ProbeFinished(err error)
}

type nopObserver struct{}

func (nopObserver) CycleStarted()       {}
func (nopObserver) ProbeFinished(error) {}

// Dispatcher sends probes. Each probe runs in its own goroutine and nobody
// waits for it; the only synchronisation is an in-flight counter that lets
// process shutdown drain outstanding probes.
type Dispatcher struct {
	client   *http.Client
	logger   logging.Logger
	observer Observer
	inflight sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient sets the client used for probes.
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		d.client = c
	}
}

// WithLogger sets the logger that receives probe failures.
func WithLogger(l logging.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithObserver sets the observer, typically the metrics collector.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// NewDispatcher creates a dispatcher. The default client has no overall
// timeout; dial and TLS handshake limits come from http.DefaultTransport.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		client:   &http.Client{Transport: http.DefaultTransport},
		logger:   logging.DefaultLogger,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fire starts one probe per URL and returns immediately. Probes outlive
// ctx's cancellation but keep its values.
func (d *Dispatcher) Fire(ctx context.Context, urls []string) {
	ctx = context.WithoutCancel(ctx)
	d.logger.Debug("dispatching wake probes", logging.Int("count", len(urls)))
	for _, u := range urls {
		d.inflight.Add(1)
		go d.send(ctx, Probe{URL: u})
	}
}

func (d *Dispatcher) send(ctx context.Context, p Probe) {
	defer d.inflight.Done()

	var err error
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("probe panicked: %v", rec)
		}
		if err != nil {
			d.logger.Warn("wake probe failed",
				logging.String("url", p.URL),
				logging.Err(err),
			)
		}
		d.observer.ProbeFinished(err)
	}()

	err = d.probe(ctx, p)
}

func (d *Dispatcher) probe(ctx context.Context, p Probe) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	// Status and headers are deliberately ignored.
	return resp.Body.Close()
}

// Drain waits for in-flight probes or for ctx to end.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain wake probes: %w", ctx.Err())
	}
}
