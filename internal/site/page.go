package site

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/northbeam/website/internal/wake"
	"github.com/northbeam/website/internal/website/landing"
	"github.com/northbeam/website/pkg/core"
	"github.com/northbeam/website/pkg/logging"
	"github.com/northbeam/website/pkg/router"
)

// Browser events a page understands.
const (
	EventScroll = "scroll"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrUnknownEvent = errors.New("unknown event")
)

// renderFunc builds a page body from the layout and route params.
type renderFunc func(l landing.Layout, params core.Params) (string, error)

// Page is the live component behind every page. One instance serves one
// page view, and each instance carries its own wake latch.
type Page struct {
	core.BaseComponent

	name   string
	site   *Site
	render renderFunc

	params    core.Params
	keepAlive *wake.KeepAlive
}

// Name returns the route name.
func (p *Page) Name() string {
	return p.name
}

// Mount validates the route params and arms the wake latch.
func (p *Page) Mount(ctx context.Context, params core.Params, session core.Session) error {
	p.params = params
	// Resolve once so unknown slugs fail before render or join.
	if _, err := p.render(landing.Layout{}, params); err != nil {
		return err
	}
	p.keepAlive = wake.NewKeepAlive(p.site.registry, p.site.dispatcher)
	return nil
}

// HandleEvent routes browser events. Only the first scroll of the page
// view does anything.
func (p *Page) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	switch event {
	case EventScroll:
		p.keepAlive.HandleScroll(ctx)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
}

// Render renders the complete document.
func (p *Page) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		body, err := p.render(p.site.layout(ctx, p.params.Get("path")), p.params)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, body)
		return err
	})
}

// Terminate disarms the wake latch, fired or not.
func (p *Page) Terminate(ctx context.Context, reason core.TerminateReason) error {
	if p.keepAlive != nil {
		p.keepAlive.Detach()
		logging.L(ctx).Debug("page view ended",
			logging.String("page", p.name),
			logging.Bool("live", core.PageViewFrom(ctx).Live()),
			logging.String("reason", reason.String()),
			logging.Bool("woke", p.keepAlive.Fired()),
		)
	}
	return nil
}

// layout builds the per-request layout. The CSP nonce only exists on the
// HTTP render.
func (s *Site) layout(ctx context.Context, path string) landing.Layout {
	return landing.Layout{
		BaseURL:  s.baseURL,
		Nonce:    router.CSPNonce(ctx),
		LivePath: path,
	}
}
