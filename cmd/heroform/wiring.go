package main

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/internal/config"
	"github.com/goliatone/go-heroform/pkg/openapi"
	"github.com/goliatone/go-heroform/pkg/store/httpstore"
	"github.com/goliatone/go-heroform/pkg/store/memstore"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/themes"
)

// buildStore returns the configured record store. The in-memory store is
// also returned on its own so serve can mount its API.
func buildStore(cfg config.Config, logger *zap.Logger) (submission.RecordStore, *memstore.Store, error) {
	switch cfg.Store.Kind {
	case config.StoreHTTP:
		opts := []httpstore.Option{
			httpstore.WithTimeout(cfg.Store.Timeout),
			httpstore.WithLogger(logger.Named("httpstore")),
		}
		if cfg.Store.APIDescription != "" {
			endpoints, err := loadEndpoints(cfg.Store.APIDescription)
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, httpstore.WithEndpoints(endpoints))
		}
		store, err := httpstore.New(cfg.Store.BaseURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.StoreMemory, "":
		store := memstore.New(memstore.WithLogger(logger.Named("memstore")))
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}

// loadEndpoints reads the create, update and get operations from an OpenAPI
// document on disk.
func loadEndpoints(path string) (openapi.Endpoints, error) {
	doc, err := openapi.ReadFile(path)
	if err != nil {
		return openapi.Endpoints{}, err
	}
	spec, err := openapi.Load(context.Background(), doc)
	if err != nil {
		return openapi.Endpoints{}, err
	}
	return spec.Endpoints()
}

// buildTheme selects the configured theme. The embedded manifest is always
// registered; a manifest file adds (or replaces) one more.
func buildTheme(cfg config.Config) (*theme.RendererConfig, error) {
	manifest, err := themes.Default()
	if err != nil {
		return nil, err
	}
	selector, err := themes.NewSelector(themes.DefaultTheme, "", manifest)
	if err != nil {
		return nil, err
	}
	if cfg.Theme.Manifest != "" {
		custom, err := themes.LoadManifest(cfg.Theme.Manifest)
		if err != nil {
			return nil, err
		}
		if err := selector.Register(custom); err != nil {
			return nil, err
		}
	}
	selection, err := selector.Select(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, err
	}
	return themes.RendererConfig(selection, themes.DefaultPartials()), nil
}
