// Package core defines the page-view lifecycle shared by the router and
// the pages it serves.
package core

import (
	"context"
	"io"
)

// Component is one page view. The router creates an instance per HTTP
// render and another per WebSocket join; an instance never serves two
// page views.
type Component interface {
	Name() string

	// Mount prepares the page view. An error fails the render or the join.
	Mount(ctx context.Context, params Params, session Session) error

	Render(ctx context.Context) Renderer

	// HandleEvent receives browser events after a successful join.
	HandleEvent(ctx context.Context, event string, payload map[string]any) error

	// Terminate is called at most once, and only after a successful Mount.
	Terminate(ctx context.Context, reason TerminateReason) error
}

// Renderer writes HTML.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// StringRenderer renders fixed HTML.
func StringRenderer(html string) Renderer {
	return RendererFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

// Params holds the route parameters, the first value of each query
// parameter and the request path under "path".
type Params map[string]string

func (p Params) Get(key string) string {
	return p[key]
}

// Session is request-derived data such as the request ID.
type Session map[string]any

// TerminateReason says why a page view ended.
type TerminateReason int

const (
	// TerminateNormal: the browser left, or the HTTP render finished.
	TerminateNormal TerminateReason = iota
	// TerminateShutdown: the server is draining.
	TerminateShutdown
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateNormal:
		return "normal"
	case TerminateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// BaseComponent supplies no-op lifecycle methods.
type BaseComponent struct{}

func (BaseComponent) Mount(context.Context, Params, Session) error { return nil }

func (BaseComponent) HandleEvent(context.Context, string, map[string]any) error { return nil }

func (BaseComponent) Terminate(context.Context, TerminateReason) error { return nil }

type pageViewKey struct{}

// PageView identifies the page view a context belongs to.
type PageView struct {
	Route string
	// SocketID is empty during the HTTP render.
	SocketID string
}

// Live reports whether the page view has a WebSocket.
func (v PageView) Live() bool {
	return v.SocketID != ""
}

// WithPageView attaches v to ctx.
func WithPageView(ctx context.Context, v PageView) context.Context {
	return context.WithValue(ctx, pageViewKey{}, v)
}

// PageViewFrom returns the page view attached to ctx, if any.
func PageViewFrom(ctx context.Context) PageView {
	v, _ := ctx.Value(pageViewKey{}).(PageView)
	return v
}
