package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func assertSamples(t *testing.T, m *Metrics, samples ...string) {
	t.Helper()
	body := scrape(t, m)
	for _, s := range samples {
		if !strings.Contains(body, s+"\n") {
			t.Errorf("missing sample %q in:\n%s", s, body)
		}
	}
}

func TestWakeCounters(t *testing.T) {
	m := newTestMetrics()

	m.CycleStarted()
	m.ProbeFinished(nil)
	m.ProbeFinished(nil)
	m.ProbeFinished(errors.New("dial tcp: refused"))

	assertSamples(t, m,
		"northbeam_wake_cycles_total 1",
		`northbeam_wake_probes_total{outcome="ok"} 2`,
		`northbeam_wake_probes_total{outcome="error"} 1`,
	)
}

func TestSessionsChanged(t *testing.T) {
	m := newTestMetrics()
	m.SessionsChanged(7)
	m.SessionsChanged(3)
	assertSamples(t, m, "northbeam_live_sessions 3")
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := newTestMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/services/{slug}", func(w http.ResponseWriter, r *http.Request) {})

	for _, path := range []string{"/services/web-development", "/services/seo-growth", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assertSamples(t, m,
		`northbeam_http_requests_total{method="GET",route="/services/{slug}",status="200"} 2`,
		`northbeam_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	)
}

func TestHandler(t *testing.T) {
	m := New()
	m.CycleStarted()

	body := scrape(t, m)
	for _, want := range []string{"northbeam_wake_cycles_total 1", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
