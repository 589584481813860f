package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/northbeam/website/internal/site"
	"github.com/northbeam/website/internal/wake"
	"github.com/northbeam/website/pkg/health"
	"github.com/northbeam/website/pkg/logging"
	"github.com/northbeam/website/pkg/metrics"
	"github.com/northbeam/website/pkg/router"
	"github.com/northbeam/website/pkg/shutdown"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the website until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// server is everything serve starts and later shuts down.
type server struct {
	http       *http.Server
	router     *router.Router
	dispatcher *wake.Dispatcher
	health     *health.Checker
}

func (a *app) newServer() (*server, error) {
	reg, err := wake.LoadOrDefault(a.cfg.Registry)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	dispatcherOpts := []wake.DispatcherOption{wake.WithLogger(a.logger)}
	routerOpts := []router.Option{
		router.WithConfig(a.cfg.Live()),
		router.WithLogger(a.logger),
	}
	if a.cfg.Metrics {
		m = metrics.New()
		dispatcherOpts = append(dispatcherOpts, wake.WithObserver(m))
		routerOpts = append(routerOpts, router.WithSessionObserver(m))
	}
	dispatcher := wake.NewDispatcher(dispatcherOpts...)

	checker := health.NewChecker(version)
	checker.Add("wake-registry", health.WakeRegistry(reg.Len), health.Timeout(time.Second))

	s := site.New(site.Config{
		BaseURL:    a.cfg.BaseURL,
		Registry:   reg,
		Dispatcher: dispatcher,
		Metrics:    m,
		Health:     checker,
	})
	r := router.New(append(routerOpts, router.WithErrorHandler(s.HandleError))...)
	checker.Add("live-sessions", health.SessionCapacity(r.SessionManager().Count, a.cfg.MaxSessions), health.Timeout(time.Second))
	s.Register(r)

	a.logger.Info("wake registry loaded",
		logging.Int("projects", len(reg.Projects())),
		logging.Int("urls", reg.Len()),
	)
	if reg.Len() == 0 {
		a.logger.Warn("wake registry has no service URLs; scrolls will wake nothing")
	}

	return &server{
		http: &http.Server{
			Addr:              a.cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router:     r,
		dispatcher: dispatcher,
		health:     checker,
	}, nil
}

func (a *app) serve(ctx context.Context) error {
	srv, err := a.newServer()
	if err != nil {
		return err
	}

	sh := shutdown.NewHandler(a.cfg.ShutdownTimeout, func(name string, err error, d time.Duration) {
		if err != nil {
			a.logger.Warn("shutdown hook failed", logging.String("hook", name), logging.Err(err))
			return
		}
		a.logger.Debug("shutdown hook done", logging.String("hook", name), logging.Duration("duration", d))
	})
	sh.Add("readiness", shutdown.StageReadiness, func(context.Context) error {
		srv.health.SetDraining()
		return nil
	})
	sh.Add("http", shutdown.StageHTTP, srv.http.Shutdown)
	sh.Add("live-sessions", shutdown.StageLive, srv.router.Shutdown)
	sh.Add("wake-probes", shutdown.StageWake, srv.dispatcher.Drain)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening", logging.String("addr", a.cfg.Addr), logging.String("base_url", a.cfg.BaseURL))
		if err := srv.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.router.StartCleanup(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		return sh.Shutdown(context.Background())
	})

	return g.Wait()
}
