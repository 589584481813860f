package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/northbeam/website/internal/wake"
	"github.com/northbeam/website/pkg/health"
	"github.com/northbeam/website/pkg/logging"
	"github.com/northbeam/website/pkg/metrics"
	"github.com/northbeam/website/pkg/protocol"
	"github.com/northbeam/website/pkg/router"
)

type fixture struct {
	srv        *httptest.Server
	router     *router.Router
	dispatcher *wake.Dispatcher
	metrics    *metrics.Metrics

	mu   sync.Mutex
	hits []string
}

func (f *fixture) wakeHits() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.hits...)
}

func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.dispatcher.Drain(ctx); err != nil {
		t.Fatal(err)
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits = append(f.hits, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
	}))
	t.Cleanup(backend.Close)

	reg, err := wake.NewRegistry(
		wake.Project{Name: "api", Services: []string{backend.URL + "/api", backend.URL + "/worker"}},
		wake.Project{Name: "cms", Services: []string{backend.URL + "/api"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	f.metrics = metrics.New()
	f.dispatcher = wake.NewDispatcher(wake.WithLogger(logging.NopLogger{}), wake.WithObserver(f.metrics))

	s := New(Config{
		BaseURL:    "https://northbeam.digital",
		Registry:   reg,
		Dispatcher: f.dispatcher,
		Metrics:    f.metrics,
		Health:     health.NewChecker("test"),
	})
	f.router = router.New(router.WithErrorHandler(s.HandleError), router.WithSessionObserver(f.metrics))
	s.Register(f.router)

	f.srv = httptest.NewServer(f.router)
	t.Cleanup(f.srv.Close)
	return f
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestSite_Pages(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/", 200, []string{`data-live-path="/"`, `"@type":"Organization"`, "In their words", `<script src="/assets/northbeam.js" defer>`}},
		{"/services", 200, []string{`"@type":"Service"`, `<a href="/services" aria-current="page">`}},
		{"/services/web-development", 200, []string{`<h1 id="service-title">Web development</h1>`, `<link rel="canonical" href="https://northbeam.digital/services/web-development">`}},
		{"/privacy", 200, []string{`<meta name="robots" content="index, nofollow">`}},
		{"/services/time-travel", 404, []string{"This page has moved on", `content="noindex, nofollow"`}},
		{"/nowhere", 404, []string{"This page has moved on"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, f.srv.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}

	// Rendering pages over HTTP never wakes anything.
	f.drain(t)
	if hits := f.wakeHits(); len(hits) != 0 {
		t.Errorf("HTTP render sent probes: %v", hits)
	}
}

func TestSite_StyleNonceMatchesCSP(t *testing.T) {
	f := newFixture(t)

	resp, body := get(t, f.srv.URL+"/")
	m := regexp.MustCompile(`<style nonce="([^"]+)">`).FindStringSubmatch(body)
	if m == nil {
		t.Fatal("style block has no nonce")
	}
	if csp := resp.Header.Get("Content-Security-Policy"); !strings.Contains(csp, "'nonce-"+m[1]+"'") {
		t.Errorf("CSP %q does not allow nonce %q", csp, m[1])
	}
}

func TestSite_SitemapAndRobots(t *testing.T) {
	f := newFixture(t)

	resp, body := get(t, f.srv.URL+"/sitemap.xml")
	if resp.StatusCode != 200 || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/xml") {
		t.Fatalf("sitemap: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "<loc>https://northbeam.digital/services/brand-identity</loc>") {
		t.Errorf("sitemap missing service page:\n%s", body)
	}
	if strings.Contains(body, "/404") {
		t.Error("noindex page listed in sitemap")
	}

	_, robots := get(t, f.srv.URL+"/robots.txt")
	if !strings.Contains(robots, "Sitemap: https://northbeam.digital/sitemap.xml") {
		t.Errorf("robots.txt:\n%s", robots)
	}
}

func TestSite_OperationalEndpoints(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/assets/northbeam.js", "/assets/favicon.svg"} {
		if resp, _ := get(t, f.srv.URL+path); resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
	}
}

// live is a minimal browser stand-in speaking the Phoenix tuple format.
type live struct {
	t     *testing.T
	conn  *websocket.Conn
	codec protocol.Codec
	ref   int
}

func dial(t *testing.T, f *fixture, path string) *live {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(f.srv.URL, "http")+path, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return &live{t: t, conn: conn, codec: protocol.DefaultCodecRegistry.Default()}
}

func (l *live) push(msg *protocol.Message) string {
	l.t.Helper()
	l.ref++
	msg.Ref = strconv.Itoa(l.ref)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := l.codec.Encode(msg)
	if err != nil {
		l.t.Fatal(err)
	}
	if err := l.conn.Write(ctx, websocket.MessageText, data); err != nil {
		l.t.Fatalf("write: %v", err)
	}
	_, raw, err := l.conn.Read(ctx)
	if err != nil {
		l.t.Fatalf("read: %v", err)
	}
	reply, err := l.codec.Decode(raw)
	if err != nil {
		l.t.Fatal(err)
	}
	return reply.Status()
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSite_FirstScrollWakesEveryServiceOnce(t *testing.T) {
	f := newFixture(t)
	c := dial(t, f, "/")
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	if got := c.push(protocol.JoinMessage("lv:/", map[string]any{})); got != "ok" {
		t.Fatalf("join = %q", got)
	}
	for i := 0; i < 3; i++ {
		if got := c.push(protocol.EventMessage("lv:/", EventScroll, map[string]any{"y": 120 * i})); got != "ok" {
			t.Fatalf("scroll %d = %q", i, got)
		}
	}
	f.drain(t)

	hits := f.wakeHits()
	if len(hits) != 3 {
		t.Fatalf("probes = %v, want 3", hits)
	}
	counts := map[string]int{}
	for _, h := range hits {
		counts[h]++
	}
	if counts["HEAD /api"] != 2 || counts["HEAD /worker"] != 1 {
		t.Errorf("probe distribution = %v", counts)
	}

	_, body := get(t, f.srv.URL+"/metrics")
	if !strings.Contains(body, "northbeam_wake_cycles_total 1") {
		t.Error("wake cycle not counted")
	}
}

func TestSite_EachPageViewWakesSeparately(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		c := dial(t, f, "/about")
		c.push(protocol.JoinMessage("lv:/about", map[string]any{}))
		c.push(protocol.EventMessage("lv:/about", EventScroll, nil))
		c.conn.Close(websocket.StatusNormalClosure, "")
	}
	f.drain(t)

	if got := len(f.wakeHits()); got != 6 {
		t.Errorf("probes = %d, want 6 (two page views)", got)
	}
}

func TestSite_LeaveBeforeScrollSendsNothing(t *testing.T) {
	f := newFixture(t)
	c := dial(t, f, "/services")

	if got := c.push(protocol.JoinMessage("lv:/services", map[string]any{})); got != "ok" {
		t.Fatalf("join = %q", got)
	}
	c.conn.Close(websocket.StatusNormalClosure, "")

	eventually(t, func() bool { return f.router.SessionManager().Count() == 0 })
	f.drain(t)

	if hits := f.wakeHits(); len(hits) != 0 {
		t.Errorf("probes after leave-before-scroll: %v", hits)
	}
}

func TestSite_UnknownEventIsRejected(t *testing.T) {
	f := newFixture(t)
	c := dial(t, f, "/")
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	c.push(protocol.JoinMessage("lv:/", map[string]any{}))
	if got := c.push(protocol.EventMessage("lv:/", "click", nil)); got != "error" {
		t.Errorf("unknown event status = %q, want error", got)
	}
}

func TestSite_UnknownServiceCannotJoin(t *testing.T) {
	f := newFixture(t)
	c := dial(t, f, "/services/time-travel")
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	if got := c.push(protocol.JoinMessage("lv:/services/time-travel", map[string]any{})); got != "error" {
		t.Errorf("join status = %q, want error", got)
	}
}
