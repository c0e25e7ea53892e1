// Package server runs the preview server: a static file server over the
// build output with rebuild-on-change watching and optional metrics.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Server serves the output directory and rebuilds when content changes.
type Server struct {
	cfg     *config.Config
	builder *site.Builder
	reg     *prom.Registry
}

// New creates a preview server. reg may be nil when metrics are disabled.
func New(cfg *config.Config, builder *site.Builder, reg *prom.Registry) *Server {
	return &Server{cfg: cfg, builder: builder, reg: reg}
}

// Run builds once, then serves until the context is cancelled. The change
// watcher runs alongside the HTTP server; either failing stops both.
func (s *Server) Run(ctx context.Context) error {
	if err := s.builder.Build(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output.Directory)))
	if s.cfg.Serve.Metrics {
		mux.Handle("/metrics", metrics.HTTPHandler(s.reg))
	}

	srv := &http.Server{
		Addr:              s.cfg.Serve.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Preview server listening", slog.String("addr", s.cfg.Serve.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return s.watch(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		slog.Error("Preview server stopped", logfields.Error(err))
	}
	return err
}
