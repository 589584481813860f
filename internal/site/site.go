// Package site wires the Northbeam pages, the wake pinger and the
// operational endpoints onto a live router.
package site

import (
	"errors"
	"net/http"

	"github.com/northbeam/website/client"
	"github.com/northbeam/website/internal/wake"
	"github.com/northbeam/website/internal/website"
	"github.com/northbeam/website/internal/website/content"
	"github.com/northbeam/website/internal/website/landing"
	"github.com/northbeam/website/pkg/core"
	"github.com/northbeam/website/pkg/health"
	"github.com/northbeam/website/pkg/logging"
	"github.com/northbeam/website/pkg/metrics"
	"github.com/northbeam/website/pkg/router"
)

// maxAge is the cache lifetime of sitemap.xml and robots.txt, in seconds.
const maxAge = "3600"

// Config holds the site's collaborators.
type Config struct {
	// BaseURL is the public origin used for canonical URLs and the sitemap.
	BaseURL    string
	Registry   *wake.Registry
	Dispatcher *wake.Dispatcher
	// Metrics is optional; nil disables /metrics.
	Metrics *metrics.Metrics
	// Health is optional; nil disables /healthz and /readyz.
	Health *health.Checker
}

// Site is the route table of the website.
type Site struct {
	baseURL    string
	registry   *wake.Registry
	dispatcher *wake.Dispatcher
	metrics    *metrics.Metrics
	health     *health.Checker
}

// New creates the site.
func New(cfg Config) *Site {
	return &Site{
		baseURL:    cfg.BaseURL,
		registry:   cfg.Registry,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		health:     cfg.Health,
	}
}

// Pages returns the metadata records of every page.
func (s *Site) Pages() []website.PageMeta {
	return content.Pages()
}

// Register installs middleware and routes. It must be called before the
// router serves requests.
func (s *Site) Register(r *router.Router) {
	r.Use(router.SecureHeaders())
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	s.live(r, "/", "home", func(l landing.Layout, _ core.Params) (string, error) {
		return landing.RenderHome(l), nil
	})
	s.live(r, "/services", "services", func(l landing.Layout, _ core.Params) (string, error) {
		return landing.RenderServicesIndex(l), nil
	})
	s.live(r, "/services/{slug}", "service", func(l landing.Layout, p core.Params) (string, error) {
		svc, ok := content.ServiceBySlug(p.Get("slug"))
		if !ok {
			return "", ErrPageNotFound
		}
		return landing.RenderServicePage(l, svc), nil
	})
	s.live(r, "/about", "about", func(l landing.Layout, _ core.Params) (string, error) {
		return landing.RenderAbout(l), nil
	})
	s.live(r, "/privacy", "privacy", func(l landing.Layout, _ core.Params) (string, error) {
		return landing.RenderPrivacy(l), nil
	})

	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)
	r.Handle("/assets/*", http.StripPrefix("/assets/", client.Handler()))

	if s.health != nil {
		r.Handle("/healthz", s.health.LivenessHandler())
		r.Handle("/readyz", s.health.ReadinessHandler())
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.NotFound(s.handleNotFound)
}

func (s *Site) live(r *router.Router, path, name string, render renderFunc) {
	r.Live(path, func() core.Component {
		return &Page{name: name, site: s, render: render}
	}, router.WithName(name))
}

// HandleError is the router's error handler: unknown pages get the 404
// page, everything else a plain 500.
func (s *Site) HandleError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, ErrPageNotFound) {
		s.handleNotFound(w, req)
		return
	}
	logging.L(req.Context()).Error("page render failed",
		logging.String("path", req.URL.Path),
		logging.Err(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Site) handleNotFound(w http.ResponseWriter, req *http.Request) {
	l := s.layout(req.Context(), "")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(landing.RenderNotFound(l)))
}

func (s *Site) handleSitemap(w http.ResponseWriter, req *http.Request) {
	out, err := website.RenderSitemap(s.baseURL, s.Pages())
	if err != nil {
		s.HandleError(w, req, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+maxAge)
	w.Write(out)
}

func (s *Site) handleRobots(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+maxAge)
	w.Write([]byte(website.RenderRobots(s.baseURL, s.Pages())))
}
