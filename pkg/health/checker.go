// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ErrDraining is reported by readiness once shutdown has begun.
var ErrDraining = errors.New("server is draining")

const defaultTimeout = 5 * time.Second

// CheckFunc reports a problem by returning an error. A *DetailError adds
// details to the report.
type CheckFunc func(ctx context.Context) error

// Result is the outcome of one check.
type Result struct {
	Status     Status         `json:"status"`
	DurationMS int64          `json:"duration_ms"`
	Error      string         `json:"error,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// Report is the outcome of every check.
type Report struct {
	Status  Status            `json:"status"`
	Version string            `json:"version,omitempty"`
	Time    time.Time         `json:"time"`
	Checks  map[string]Result `json:"checks"`
}

type check struct {
	name     string
	fn       CheckFunc
	timeout  time.Duration
	critical bool
}

// CheckOption configures a check.
type CheckOption func(*check)

// Critical makes a failing check mark the whole report unhealthy rather
// than degraded.
func Critical() CheckOption {
	return func(c *check) { c.critical = true }
}

// Timeout bounds the check. The default is five seconds.
func Timeout(d time.Duration) CheckOption {
	return func(c *check) { c.timeout = d }
}

// Checker runs the registered checks for the readiness probe.
type Checker struct {
	version  string
	draining atomic.Bool

	mu     sync.RWMutex
	checks []check
}

// NewChecker creates a checker that reports version.
func NewChecker(version string) *Checker {
	return &Checker{version: version}
}

// Add registers a check.
func (c *Checker) Add(name string, fn CheckFunc, opts ...CheckOption) {
	ch := check{name: name, fn: fn, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&ch)
	}
	c.mu.Lock()
	c.checks = append(c.checks, ch)
	c.mu.Unlock()
}

// SetDraining makes readiness fail so load balancers stop sending new
// page views while existing ones finish.
func (c *Checker) SetDraining() {
	c.draining.Store(true)
}

func (c *Checker) Draining() bool {
	return c.draining.Load()
}

// Run executes every check concurrently.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := append([]check(nil), c.checks...)
	c.mu.RUnlock()

	results := make([]Result, len(checks))
	var g errgroup.Group
	for i, ch := range checks {
		g.Go(func() error {
			results[i] = ch.run(ctx)
			return nil
		})
	}
	g.Wait()

	report := Report{
		Status:  StatusHealthy,
		Version: c.version,
		Time:    time.Now(),
		Checks:  make(map[string]Result, len(checks)+1),
	}
	for i, ch := range checks {
		r := results[i]
		report.Checks[ch.name] = r
		if r.Status == StatusHealthy {
			continue
		}
		if ch.critical {
			report.Status = StatusUnhealthy
		} else if report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}
	if c.Draining() {
		report.Status = StatusUnhealthy
		report.Checks["shutdown"] = Result{Status: StatusUnhealthy, Error: ErrDraining.Error()}
	}
	return report
}

func (ch check) run(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, ch.timeout)
	defer cancel()

	start := time.Now()
	err := ch.fn(ctx)
	r := Result{Status: StatusHealthy, DurationMS: time.Since(start).Milliseconds()}
	if err != nil {
		r.Status = StatusUnhealthy
		r.Error = err.Error()
		var de *DetailError
		if errors.As(err, &de) {
			r.Details = de.Details
		}
	}
	return r
}

// LivenessHandler answers 200 while the process is up.
func (c *Checker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "alive", "version": c.version})
	})
}

// ReadinessHandler answers 503 when the report is unhealthy and 200
// otherwise, with the report as body.
func (c *Checker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := c.Run(r.Context())
		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, report)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// DetailError is a check failure with structured details.
type DetailError struct {
	Message string
	Details map[string]any
}

func (e *DetailError) Error() string {
	return e.Message
}

// SessionCapacity fails once the live session count reaches max. A max of
// zero never fails.
func SessionCapacity(count func() int, max int) CheckFunc {
	return func(context.Context) error {
		if max <= 0 {
			return nil
		}
		if n := count(); n >= max {
			return &DetailError{
				Message: "live sessions at capacity",
				Details: map[string]any{"current": n, "max": max},
			}
		}
		return nil
	}
}

// WakeRegistry fails when no wake URLs are loaded.
func WakeRegistry(countURLs func() int) CheckFunc {
	return func(context.Context) error {
		if countURLs() == 0 {
			return &DetailError{Message: "wake registry is empty"}
		}
		return nil
	}
}
