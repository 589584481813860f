package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/go-cmp/cmp"

	"github.com/northbeam/website/pkg/core"
	"github.com/northbeam/website/pkg/protocol"
)

// MockComponent records lifecycle calls.
type MockComponent struct {
	core.BaseComponent

	mountErr error

	mu              sync.Mutex
	mounts          int
	events          []string
	terminateReason *core.TerminateReason
	params          core.Params
}

func (c *MockComponent) Name() string {
	return "MockComponent"
}

func (c *MockComponent) Mount(ctx context.Context, params core.Params, session core.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounts++
	c.params = params
	return c.mountErr
}

func (c *MockComponent) Render(ctx context.Context) core.Renderer {
	return core.StringRenderer("<main>Mock Content</main>")
}

func (c *MockComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	if event == "explode" {
		panic("boom")
	}
	return nil
}

func (c *MockComponent) Terminate(ctx context.Context, reason core.TerminateReason) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminateReason = &reason
	return nil
}

func (c *MockComponent) snapshot() (mounts int, events []string, reason *core.TerminateReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounts, append([]string(nil), c.events...), c.terminateReason
}

type countingObserver struct {
	last atomic.Int64
}

func (o *countingObserver) SessionsChanged(n int) {
	o.last.Store(int64(n))
}

// componentLog hands out components and remembers them in creation order.
type componentLog struct {
	mu    sync.Mutex
	comps []*MockComponent
}

func (l *componentLog) factory() core.Component {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := &MockComponent{}
	l.comps = append(l.comps, c)
	return c
}

func (l *componentLog) last() *MockComponent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.comps[len(l.comps)-1]
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

func TestRouter_LiveRegistersRoutes(t *testing.T) {
	r := New()
	log := &componentLog{}

	r.Live("/", log.factory, WithName("home"), WithMeta("title", "Home"))
	r.Live("/services", log.factory)

	var got []string
	for _, route := range r.Routes() {
		got = append(got, route.Name+"="+route.Path)
	}
	if diff := cmp.Diff([]string{"home=/", "/services=/services"}, got); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
	if r.Routes()[0].Meta["title"] != "Home" {
		t.Error("expected route meta to be kept")
	}
}

func TestRouter_Live_InitialHTTPRender(t *testing.T) {
	r := New()
	log := &componentLog{}
	r.Live("/work/{slug}", log.factory)

	req := httptest.NewRequest(http.MethodGet, "/work/atlas?ref=ad", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Mock Content") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}

	comp := log.last()
	mounts, events, reason := comp.snapshot()
	if mounts != 1 || len(events) != 0 {
		t.Errorf("expected one mount and no events, got %d/%v", mounts, events)
	}
	if reason == nil || *reason != core.TerminateNormal {
		t.Error("HTTP render should terminate its component")
	}
	if comp.params["slug"] != "atlas" || comp.params["ref"] != "ad" || comp.params["path"] != "/work/atlas" {
		t.Errorf("unexpected params %v", comp.params)
	}
}

func TestRouter_Live_MountError(t *testing.T) {
	r := New()
	r.Live("/", func() core.Component {
		return &MockComponent{mountErr: errors.New("registry unavailable")}
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := New()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nothing here", http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "nothing here") {
		t.Errorf("unexpected 404 response %d %q", rec.Code, rec.Body.String())
	}
}

// liveClient speaks the Phoenix tuple format over a real WebSocket.
type liveClient struct {
	t     *testing.T
	conn  *websocket.Conn
	codec protocol.Codec
	ref   int
}

func dialLive(t *testing.T, srv *httptest.Server, path, vsn string) *liveClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	if vsn != "" {
		u += "?vsn=" + vsn
	}
	conn, _, err := websocket.Dial(ctx, u, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", u, err)
	}
	return &liveClient{t: t, conn: conn, codec: protocol.DefaultCodecRegistry.ForVersion(vsn)}
}

func (c *liveClient) push(msg *protocol.Message) *protocol.Message {
	c.t.Helper()
	c.ref++
	msg.Ref = strconv.Itoa(c.ref)
	data, err := c.codec.Encode(msg)
	if err != nil {
		c.t.Fatalf("encode: %v", err)
	}
	frame := websocket.MessageText
	if c.codec.Binary() {
		frame = websocket.MessageBinary
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.conn.Write(ctx, frame, data); err != nil {
		c.t.Fatalf("write: %v", err)
	}

	_, raw, err := c.conn.Read(ctx)
	if err != nil {
		c.t.Fatalf("read: %v", err)
	}
	reply, err := c.codec.Decode(raw)
	if err != nil {
		c.t.Fatalf("decode: %v", err)
	}
	if reply.Ref != msg.Ref {
		c.t.Fatalf("reply ref = %q, want %q", reply.Ref, msg.Ref)
	}
	return reply
}

func status(msg *protocol.Message) string {
	return msg.Status()
}

func TestRouter_LiveSessionLifecycle(t *testing.T) {
	for _, vsn := range []string{"", "msgpack"} {
		t.Run("vsn="+vsn, func(t *testing.T) {
			obs := &countingObserver{}
			r := New(WithSessionObserver(obs))
			log := &componentLog{}
			r.Live("/", log.factory)

			srv := httptest.NewServer(r)
			defer srv.Close()

			c := dialLive(t, srv, "/", vsn)

			if got := status(c.push(protocol.JoinMessage("lv:page", map[string]any{}))); got != "ok" {
				t.Fatalf("join status = %q", got)
			}
			if got := status(c.push(protocol.EventMessage("lv:page", "scroll", nil))); got != "ok" {
				t.Fatalf("scroll status = %q", got)
			}
			if got := status(c.push(protocol.HeartbeatMessage())); got != "ok" {
				t.Fatalf("heartbeat status = %q", got)
			}
			if obs.last.Load() != 1 {
				t.Errorf("expected 1 live session, observer saw %d", obs.last.Load())
			}

			comp := log.last()
			c.conn.Close(websocket.StatusNormalClosure, "")

			eventually(t, func() bool {
				_, _, reason := comp.snapshot()
				return reason != nil
			})

			mounts, events, reason := comp.snapshot()
			if mounts != 1 {
				t.Errorf("expected 1 mount, got %d", mounts)
			}
			if diff := cmp.Diff([]string{"scroll"}, events); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if *reason != core.TerminateNormal {
				t.Errorf("terminate reason = %v", *reason)
			}
			eventually(t, func() bool { return r.SessionManager().Count() == 0 })
			eventually(t, func() bool { return obs.last.Load() == 0 })
		})
	}
}

func TestRouter_EventBeforeJoin(t *testing.T) {
	r := New()
	log := &componentLog{}
	r.Live("/", log.factory)

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := dialLive(t, srv, "/", "")
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	reply := c.push(protocol.EventMessage("lv:page", "scroll", nil))
	if status(reply) != "error" {
		t.Errorf("expected error reply, got %v", reply.Payload)
	}
	if _, events, _ := log.last().snapshot(); len(events) != 0 {
		t.Errorf("component should not see events before join, got %v", events)
	}
}

func TestRouter_LeaveTerminatesWithoutEvents(t *testing.T) {
	r := New()
	log := &componentLog{}
	r.Live("/", log.factory)

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := dialLive(t, srv, "/", "")
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	c.push(protocol.JoinMessage("lv:page", nil))
	if got := status(c.push(protocol.LeaveMessage("lv:page"))); got != "ok" {
		t.Errorf("leave status = %q, want ok", got)
	}

	comp := log.last()
	eventually(t, func() bool {
		_, _, reason := comp.snapshot()
		return reason != nil
	})
	if _, events, _ := comp.snapshot(); len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
}

func TestRouter_EventPanicIsRecovered(t *testing.T) {
	r := New()
	log := &componentLog{}
	r.Live("/", log.factory)

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := dialLive(t, srv, "/", "")
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	c.push(protocol.JoinMessage("lv:page", nil))
	if got := status(c.push(protocol.EventMessage("lv:page", "explode", nil))); got != "error" {
		t.Errorf("expected error reply after panic, got %q", got)
	}
	if got := status(c.push(protocol.EventMessage("lv:page", "scroll", nil))); got != "ok" {
		t.Errorf("session should survive a panicking handler, got %q", got)
	}
}

func TestRouter_ShutdownTerminatesSessions(t *testing.T) {
	r := New()
	log := &componentLog{}
	r.Live("/", log.factory)

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := dialLive(t, srv, "/", "")
	defer c.conn.Close(websocket.StatusNormalClosure, "")
	c.push(protocol.JoinMessage("lv:page", nil))

	// The client has stopped reading, so a close handshake would never
	// complete. Shutdown must still finish well inside its deadline.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	_, _, reason := log.last().snapshot()
	if reason == nil || *reason != core.TerminateShutdown {
		t.Errorf("expected TerminateShutdown, got %v", reason)
	}
}

func TestRouter_SessionLimit(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.MaxSessions = 1
	r := New(WithConfig(cfg))
	log := &componentLog{}
	r.Live("/", log.factory)

	srv := httptest.NewServer(r)
	defer srv.Close()

	first := dialLive(t, srv, "/", "")
	defer first.conn.Close(websocket.StatusNormalClosure, "")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/", nil)
	if err == nil {
		t.Fatal("expected second dial to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %v", resp)
	}
}

func TestSecureHeaders_Nonce(t *testing.T) {
	var seen string
	h := SecureHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSPNonce(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected nonce in request context")
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "'nonce-"+seen+"'") {
		t.Errorf("CSP %q does not carry nonce %q", csp, seen)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options DENY")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func TestSecureHeaders_FixedPolicy(t *testing.T) {
	var seen string
	h := SecureHeaders(WithCSP("default-src 'none'"), WithHSTS(60))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSPNonce(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "" {
		t.Errorf("fixed policy should not set a nonce, got %q", seen)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got != "default-src 'none'" {
		t.Errorf("CSP = %q", got)
	}
	if got := rec.Header().Get("Strict-Transport-Security"); got != "max-age=60; includeSubDomains" {
		t.Errorf("HSTS = %q", got)
	}
}

func TestSessionManager(t *testing.T) {
	m := NewSessionManager(2)
	route := &LiveRoute{Path: "/", Name: "home"}

	a, err := m.Create("sock-a", route, &MockComponent{}, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create("sock-b", route, &MockComponent{}, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create("sock-c", route, &MockComponent{}, nil, nil, nil); !errors.Is(err, ErrSessionLimit) {
		t.Errorf("expected ErrSessionLimit, got %v", err)
	}

	if s, ok := m.GetBySocket("sock-a"); !ok || s.ID != a.ID {
		t.Error("expected lookup by socket to find session a")
	}

	a.lastActivity.Store(time.Now().Add(-time.Hour).UnixNano())
	expired := m.Expired(time.Minute)
	if len(expired) != 1 || expired[0].ID != a.ID {
		t.Errorf("expected only session a to be expired, got %d", len(expired))
	}

	m.Remove(a.ID)
	if _, ok := m.Get(a.ID); ok {
		t.Error("session a should be removed")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 session, got %d", m.Count())
	}
}
