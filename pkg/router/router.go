// Package router serves live pages over HTTP and keeps one component
// instance per connected page view over WebSocket.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/northbeam/website/pkg/core"
	"github.com/northbeam/website/pkg/logging"
	"github.com/northbeam/website/pkg/pool"
	"github.com/northbeam/website/pkg/protocol"
	"github.com/northbeam/website/pkg/transport"
)

// Common router errors.
var (
	ErrNilRenderer = errors.New("component returned nil renderer")
	ErrNotJoined   = errors.New("event before join")
)

// SessionObserver is notified whenever the number of live sessions changes.
type SessionObserver interface {
	SessionsChanged(n int)
}

// ErrorHandler handles errors during request processing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Router handles HTTP routing and live page sessions.
type Router struct {
	mux    *chi.Mux
	routes []*LiveRoute

	config   core.Config
	logger   logging.Logger
	observer SessionObserver

	sessionManager *SessionManager

	// base parents every live session's context; Shutdown cancels it.
	base     context.Context
	stop     context.CancelFunc
	draining atomic.Bool

	errorHandler ErrorHandler

	// loops counts running message loops so Shutdown can wait for them.
	loops sync.WaitGroup

	mu sync.RWMutex
}

// LiveRoute defines a route that renders a live component.
type LiveRoute struct {
	// Path is the URL path pattern.
	Path string

	// Name identifies the page, defaulting to the path.
	Name string

	// Component is the factory function for creating the component.
	Component func() core.Component

	// Meta contains route metadata.
	Meta map[string]any
}

// RouteOption configures a LiveRoute.
type RouteOption func(*LiveRoute)

// WithName names the route.
func WithName(name string) RouteOption {
	return func(r *LiveRoute) {
		r.Name = name
	}
}

// WithMeta adds metadata to the route.
func WithMeta(key string, value any) RouteOption {
	return func(r *LiveRoute) {
		r.Meta[key] = value
	}
}

// Option configures a Router.
type Option func(*Router)

// WithConfig sets timeouts, origin policy and limits.
func WithConfig(cfg core.Config) Option {
	return func(r *Router) {
		r.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSessionObserver reports session count changes, e.g. to a gauge.
func WithSessionObserver(o SessionObserver) Option {
	return func(r *Router) {
		r.observer = o
	}
}

// WithErrorHandler sets the error handler for page renders.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// New creates a router with request ID, real IP, request logging and panic
// recovery middleware installed.
func New(opts ...Option) *Router {
	r := &Router{
		config: core.DefaultConfig(),
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.errorHandler == nil {
		r.errorHandler = r.defaultErrorHandler
	}

	r.sessionManager = NewSessionManager(r.config.MaxSessions)
	r.base, r.stop = context.WithCancel(context.Background())

	r.mux = chi.NewRouter()
	r.mux.Use(
		middleware.RequestID,
		middleware.RealIP,
		logging.RequestLogger(r.logger),
		middleware.Recoverer,
	)

	return r
}

// Use adds middleware. It must be called before any route is registered.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// SessionManager returns the session manager.
func (r *Router) SessionManager() *SessionManager {
	return r.sessionManager
}

// Live registers a live page route. GET renders the page; a WebSocket
// upgrade on the same path opens the page view's live session.
func (r *Router) Live(path string, component func() core.Component, opts ...RouteOption) {
	route := &LiveRoute{
		Path:      path,
		Name:      path,
		Component: component,
		Meta:      make(map[string]any),
	}

	for _, opt := range opts {
		opt(route)
	}

	r.mu.Lock()
	r.routes = append(r.routes, route)
	r.mu.Unlock()

	r.mux.Get(path, r.handleLive(route))
}

// Routes returns the registered live routes in registration order.
func (r *Router) Routes() []*LiveRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*LiveRoute, len(r.routes))
	copy(out, r.routes)
	return out
}

// Handle registers a standard HTTP handler.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Get registers a GET handler.
func (r *Router) Get(pattern string, handler http.HandlerFunc) {
	r.mux.Get(pattern, handler)
}

// NotFound sets the 404 handler.
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) defaultErrorHandler(w http.ResponseWriter, req *http.Request, err error) {
	logging.L(req.Context()).Error("page render failed", logging.Err(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// handleLive creates the HTTP handler for a live route.
func (r *Router) handleLive(route *LiveRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if isWebSocketRequest(req) {
			r.handleWebSocket(w, req, route)
			return
		}
		r.renderLive(w, req, route)
	}
}

// renderLive mounts a throwaway component instance, renders the full page
// and terminates it. The live session gets its own instance on join.
func (r *Router) renderLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	component := route.Component()
	params := extractParams(req)
	session := extractSession(req)

	ctx := core.WithPageView(req.Context(), core.PageView{Route: route.Name})

	mountCtx, cancel := context.WithTimeout(ctx, r.config.Timeouts.Mount)
	err := safeCall(func() error { return component.Mount(mountCtx, params, session) })
	cancel()
	if err != nil {
		r.errorHandler(w, req, fmt.Errorf("mount %s: %w", route.Name, err))
		return
	}
	defer component.Terminate(ctx, core.TerminateNormal)

	renderer := component.Render(ctx)
	if renderer == nil {
		r.errorHandler(w, req, ErrNilRenderer)
		return
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := renderer.Render(ctx, buf); err != nil {
		r.errorHandler(w, req, fmt.Errorf("render %s: %w", route.Name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// handleWebSocket upgrades the request and starts the page view's message loop.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	logger := logging.L(req.Context())

	if r.draining.Load() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	socketID := uuid.NewString()
	component := route.Component()
	params := extractParams(req)
	session := extractSession(req)

	codec := protocol.DefaultCodecRegistry.ForVersion(req.URL.Query().Get("vsn"))
	ws := transport.NewWebSocket(r.transportConfig(), codec)

	lvSession, err := r.sessionManager.Create(socketID, route, component, ws, params, session)
	if err != nil {
		logger.Warn("rejecting live session", logging.Err(err))
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	sessionLogger := r.logger.With(
		logging.String("socket_id", socketID),
		logging.String("route", route.Name),
	)
	ws.SetLogger(sessionLogger)

	if err := ws.Upgrade(w, req); err != nil {
		r.sessionManager.Remove(lvSession.ID)
		logger.Warn("websocket upgrade failed", logging.Err(err))
		return
	}

	r.sessionsChanged()
	sessionLogger.Debug("live session connected", logging.String("codec", codec.Name()))

	// The socket outlives the upgrade request, so its context is rooted
	// in the router's and cancelled when the loop exits.
	ctx, cancel := context.WithCancel(r.base)
	ctx = core.WithPageView(ctx, core.PageView{Route: route.Name, SocketID: socketID})
	ctx = logging.ContextWithLogger(ctx, sessionLogger)

	r.loops.Add(1)
	go func() {
		defer r.loops.Done()
		defer cancel()
		reason := r.messageLoop(ctx, lvSession)
		r.handleDisconnect(ctx, lvSession, reason)
	}()
}

func (r *Router) transportConfig() transport.Config {
	cfg := transport.DefaultConfig()
	cfg.MaxMessageSize = r.config.MaxMessageSize
	cfg.AllowedOrigins = r.config.AllowedOrigins
	cfg.InsecureDevMode = r.config.InsecureDevMode
	if r.config.Timeouts.Read > 0 {
		cfg.ReadTimeout = r.config.Timeouts.Read
	}
	if r.config.Timeouts.Write > 0 {
		cfg.WriteTimeout = r.config.Timeouts.Write
	}
	return cfg
}

// messageLoop processes incoming messages until the page view goes away
// and reports why it ended.
func (r *Router) messageLoop(ctx context.Context, session *Session) core.TerminateReason {
	recvCh := session.Transport.Receive()

	for {
		select {
		case msg := <-recvCh:
			session.UpdateActivity()

			switch msg.Event {
			case protocol.EventHeartbeat:
				r.reply(session, msg, nil)

			case protocol.EventJoin:
				r.handleJoin(ctx, session, msg)

			case protocol.EventLeave:
				r.reply(session, msg, nil)
				return core.TerminateNormal

			default:
				r.handleEvent(ctx, session, msg)
			}

		case <-session.Transport.Done():
			if r.draining.Load() {
				return core.TerminateShutdown
			}
			return core.TerminateNormal

		case <-ctx.Done():
			return core.TerminateShutdown
		}
	}
}

// handleJoin mounts the page view's component.
func (r *Router) handleJoin(ctx context.Context, session *Session, msg *protocol.Message) {
	if msg.JoinRef != "" {
		session.joinRef.Store(msg.JoinRef)
	} else {
		session.joinRef.Store(msg.Ref)
	}

	if !session.IsMounted() {
		mountCtx, cancel := context.WithTimeout(ctx, r.config.Timeouts.Mount)
		err := safeCall(func() error { return session.Component.Mount(mountCtx, session.Params, session.Session) })
		cancel()
		if err != nil {
			logging.L(ctx).Error("mount failed", logging.Err(err))
			r.replyError(session, msg, err)
			return
		}
		session.mounted.Store(true)
	}

	r.reply(session, msg, map[string]any{
		"socket_id": session.SocketID,
		"route":     session.Route.Name,
	})
}

// handleEvent dispatches a browser event to the component.
func (r *Router) handleEvent(ctx context.Context, session *Session, msg *protocol.Message) {
	if !session.IsMounted() {
		r.replyError(session, msg, ErrNotJoined)
		return
	}

	payload := msg.Payload
	if payload == nil {
		payload = make(map[string]any)
	}

	eventCtx, cancel := context.WithTimeout(ctx, r.config.Timeouts.Event)
	defer cancel()

	if err := safeCall(func() error { return session.Component.HandleEvent(eventCtx, msg.Event, payload) }); err != nil {
		logging.L(ctx).Warn("event handler failed", logging.String("event", msg.Event), logging.Err(err))
		r.replyError(session, msg, err)
		return
	}
	r.reply(session, msg, nil)
}

// handleDisconnect terminates the component and forgets the session.
func (r *Router) handleDisconnect(ctx context.Context, session *Session, reason core.TerminateReason) {
	session.terminate(func() {
		if err := safeCall(func() error { return session.Component.Terminate(context.WithoutCancel(ctx), reason) }); err != nil {
			logging.L(ctx).Warn("terminate failed", logging.Err(err))
		}
	})

	r.sessionManager.Remove(session.ID)
	// A draining server cannot wait on each browser's close handshake.
	if reason == core.TerminateShutdown {
		session.Transport.CloseNow()
	} else {
		session.Transport.Close()
	}
	r.sessionsChanged()

	logging.L(ctx).Debug("live session closed", logging.String("reason", reason.String()))
}

func (r *Router) sessionsChanged() {
	if r.observer != nil {
		r.observer.SessionsChanged(r.sessionManager.Count())
	}
}

func (r *Router) reply(session *Session, msg *protocol.Message, response map[string]any) {
	if response == nil {
		response = map[string]any{}
	}
	out := protocol.OkReply(msg.Ref, msg.Topic, response).WithJoinRef(session.JoinRef())
	if err := session.Transport.Send(out); err != nil {
		r.logger.Debug("reply dropped", logging.String("socket_id", session.SocketID), logging.Err(err))
	}
}

func (r *Router) replyError(session *Session, msg *protocol.Message, err error) {
	out := protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()).WithJoinRef(session.JoinRef())
	if sendErr := session.Transport.Send(out); sendErr != nil {
		r.logger.Debug("error reply dropped", logging.String("socket_id", session.SocketID), logging.Err(sendErr))
	}
}

// StartCleanup closes sessions idle for longer than the configured TTL.
// It blocks until ctx is done.
func (r *Router) StartCleanup(ctx context.Context) error {
	interval := r.config.Timeouts.Sweep
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, s := range r.sessionManager.Expired(r.config.Timeouts.IdleTTL) {
				r.logger.Info("closing idle live session", logging.String("socket_id", s.SocketID))
				s.Transport.CloseNow()
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Shutdown ends every live session and waits for their components to
// terminate. New WebSocket upgrades are refused from then on.
func (r *Router) Shutdown(ctx context.Context) error {
	r.draining.Store(true)
	r.stop()

	done := make(chan struct{})
	go func() {
		r.loops.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for live sessions: %w", ctx.Err())
	}
}

// safeCall runs fn, converting a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

// extractSession extracts session data from the request.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)

	if reqID := middleware.GetReqID(req.Context()); reqID != "" {
		session["request_id"] = reqID
	}
	session["remote_addr"] = req.RemoteAddr

	return session
}

// extractParams merges chi URL parameters and the query string.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)

	for key, values := range req.URL.Query() {
		if key == "vsn" || len(values) == 0 {
			continue
		}
		params[key] = values[0]
	}

	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			params[key] = rctx.URLParams.Values[i]
		}
	}

	params["path"] = req.URL.Path

	return params
}

// isWebSocketRequest checks if this is a WebSocket upgrade request.
func isWebSocketRequest(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Upgrade")), "websocket")
}
