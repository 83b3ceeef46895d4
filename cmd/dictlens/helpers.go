package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/gateway"
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/search"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newGateway(cfg *config.Config) (*gateway.Gateway, error) {
	g, err := gateway.New(gateway.Config{
		Origin:       cfg.Client.BaseURL,
		APIPrefix:    cfg.Gateway.APIPrefix,
		StaticCache:  cfg.Gateway.StaticCache,
		DynamicCache: cfg.Gateway.DynamicCache,
		StaticAssets: cfg.Gateway.StaticAssets,
	}, gateway.NewFileStorage(cfg.Gateway.Directory), nil, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("gateway.New > %w", err)
	}
	return g, nil
}

// newLookupClient returns the lookup API client, sending requests through the gateway when it is enabled.
// A gateway that cannot be started only logs a warning and passes requests through.
func newLookupClient(ctx context.Context, cfg *config.Config) (lookup.Client, error) {
	if !cfg.Gateway.Enabled {
		return lookup.NewHTTPClient(cfg.Client.BaseURL, nil), nil
	}

	g, err := newGateway(cfg)
	if err != nil {
		return nil, err
	}
	if err := g.Start(ctx); err != nil {
		slog.Warn("failed to start the offline gateway", slog.Any("error", err))
	}
	return lookup.NewHTTPClient(cfg.Client.BaseURL, g), nil
}

func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		Debounce:      time.Duration(cfg.Client.DebounceMillis) * time.Millisecond,
		LookupTimeout: time.Duration(cfg.Client.LookupTimeoutSecond) * time.Second,
		Logger:        slog.Default(),
	}
}
