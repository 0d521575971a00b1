package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-heroform/internal/config"
	"github.com/goliatone/go-heroform/pkg/page"
	"github.com/goliatone/go-heroform/pkg/store/memstore"
)

// apiPrefix mounts the in-memory store's REST API.
const apiPrefix = "/api"

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the hero create and edit pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}
			handler, err := newServerHandler(a.cfg, a.logger)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", a.cfg.Listen)
			if err != nil {
				return fmt.Errorf("listen %s: %w", a.cfg.Listen, err)
			}
			a.logger.Info("serving hero pages",
				zap.String("addr", ln.Addr().String()),
				zap.String("store", a.cfg.Store.Kind))
			return serve(cmd.Context(), ln, handler, a.cfg.ShutdownGrace, a.logger)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	return cmd
}

// newServerHandler wires the page routes, the optional in-memory API, a
// health check and a root redirect to the create page.
func newServerHandler(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	store, mem, err := buildStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	themeCfg, err := buildTheme(cfg)
	if err != nil {
		return nil, err
	}

	pages, err := page.New(store,
		page.WithTheme(themeCfg),
		page.WithImageRules(cfg.Images.Rules()),
		page.WithMaxBytes(cfg.MaxUploadBytes),
		page.WithLogger(logger.Named("page")),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := page.RegisterRoutes(mux, "", pages); err != nil {
		return nil, err
	}
	if mem != nil && cfg.Store.MountAPI {
		api, err := memstore.NewAPI(mem,
			memstore.WithAPIMaxBytes(cfg.MaxUploadBytes),
			memstore.WithAPILogger(logger.Named("api")),
		)
		if err != nil {
			return nil, err
		}
		mux.Handle(apiPrefix+"/", http.StripPrefix(apiPrefix, api))
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /{$}", http.RedirectHandler(page.RouteNew, http.StatusFound))
	return mux, nil
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// within grace.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("grace", grace))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
