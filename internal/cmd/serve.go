package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gulfjobs-web/internal/apply"
	"gulfjobs-web/internal/config"
	"gulfjobs-web/internal/events"
	"gulfjobs-web/internal/httpapi"
	"gulfjobs-web/internal/listing"
	"gulfjobs-web/internal/web"
)

const shutdownGrace = 5 * time.Second

type ServeCmd struct {
	Addr string `help:"Listen address; overrides app.addr."`
}

func (s *ServeCmd) Run(ctx *Context) error {
	if err := ctx.requireValid(); err != nil {
		return err
	}
	cfg := ctx.Config
	if s.Addr != "" {
		cfg.App.Addr = s.Addr
	}
	log := ctx.Logger

	if cfg.Backend.Driver == config.DriverSQLite {
		fl, err := lockDataDir(cfg.App.DataDir)
		if err != nil {
			return err
		}
		defer func() { _ = fl.Unlock() }()
	}

	be, err := openBackend(cfg, log.Debug().Enabled())
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	renderer, err := web.New()
	if err != nil {
		return err
	}

	deps := httpapi.Deps{
		Listings: listing.Store{
			Source:  be,
			OrderBy: cfg.Backend.OrderColumn,
			Timeout: cfg.Backend.Timeout,
			Logger:  log,
		},
		Registry:     apply.NewRegistry(be, cfg.Backend.Timeout, log),
		Hub:          events.NewHub(),
		Renderer:     renderer,
		Logger:       log,
		Site:         web.Site{Name: cfg.App.SiteName, BaseURL: cfg.App.BaseURL},
		PageSize:     cfg.Listing.PageSize,
		HomeFeatured: cfg.Listing.HomeFeatured,
		Driver:       cfg.Backend.Driver,
		Version:      ctx.Version,
	}

	ln, err := net.Listen("tcp", cfg.App.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.NewHandler(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("backend", cfg.Backend.Driver).
			Str("config", ctx.ConfigPath).
			Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	return g.Wait()
}
