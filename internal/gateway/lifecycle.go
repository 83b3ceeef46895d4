package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
)

var ErrInstallFailed = errors.New("gateway install failed")

// stagingSuffix names the cache an install writes into before it becomes the static cache.
const stagingSuffix = ".installing"

// Install fetches every static asset and stores them in the static cache.
// The assets are written to a staging cache renamed to the static cache once complete,
// so the static cache exists only when every asset is stored.
func (g *Gateway) Install(ctx context.Context) error {
	snapshots := make([]Snapshot, len(g.assetURLs))
	keys := make([]string, len(g.assetURLs))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, assetURL := range g.assetURLs {
		eg.Go(func() error {
			req, err := http.NewRequestWithContext(egCtx, http.MethodGet, assetURL, nil)
			if err != nil {
				return fmt.Errorf("http.NewRequestWithContext(%s) > %w", assetURL, err)
			}
			resp, err := g.next.RoundTrip(req)
			if err != nil {
				return fmt.Errorf("fetch %s > %w", assetURL, err)
			}
			if !isSuccess(resp.StatusCode) {
				_ = resp.Body.Close()
				return fmt.Errorf("fetch %s: unexpected status %d", assetURL, resp.StatusCode)
			}
			snapshot, err := takeSnapshot(req, resp, g.now())
			if err != nil {
				return fmt.Errorf("snapshot %s > %w", assetURL, err)
			}
			snapshots[i] = snapshot
			keys[i] = RequestKey(req)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}

	staging := g.cfg.StaticCache + stagingSuffix
	// a staging cache left by an interrupted install is discarded
	if _, err := g.storage.Delete(staging); err != nil {
		return fmt.Errorf("%w: storage.Delete(%s) > %w", ErrInstallFailed, staging, err)
	}
	cache, err := g.storage.Open(staging)
	if err != nil {
		return fmt.Errorf("%w: storage.Open(%s) > %w", ErrInstallFailed, staging, err)
	}
	for i, snapshot := range snapshots {
		if err := cache.Put(keys[i], snapshot); err != nil {
			if _, delErr := g.storage.Delete(staging); delErr != nil {
				g.logger.Error("failed to discard a partial static cache", slog.Any("error", delErr))
			}
			return fmt.Errorf("%w: cache.Put(%s) > %w", ErrInstallFailed, keys[i], err)
		}
	}
	if err := g.storage.Rename(staging, g.cfg.StaticCache); err != nil {
		return fmt.Errorf("%w: storage.Rename(%s) > %w", ErrInstallFailed, staging, err)
	}
	g.logger.Info("installed static assets", slog.String("cache", g.cfg.StaticCache), slog.Int("assets", len(snapshots)))
	return nil
}

// Activate deletes every cache except the current static and dynamic ones, then starts intercepting requests.
func (g *Gateway) Activate(ctx context.Context) error {
	names, err := g.storage.Names()
	if err != nil {
		return fmt.Errorf("storage.Names > %w", err)
	}
	for _, name := range names {
		if name == g.cfg.StaticCache || name == g.cfg.DynamicCache {
			continue
		}
		if _, err := g.storage.Delete(name); err != nil {
			return fmt.Errorf("storage.Delete(%s) > %w", name, err)
		}
		g.logger.Info("deleted an old cache", slog.String("cache", name))
	}

	g.mu.Lock()
	g.active = true
	g.mu.Unlock()
	return nil
}

// Start installs the static assets when the static cache is missing, then activates the gateway.
func (g *Gateway) Start(ctx context.Context) error {
	installed, err := g.storage.Has(g.cfg.StaticCache)
	if err != nil {
		return fmt.Errorf("storage.Has(%s) > %w", g.cfg.StaticCache, err)
	}
	if !installed {
		if err := g.Install(ctx); err != nil {
			return err
		}
	}
	return g.Activate(ctx)
}

type CacheStatus struct {
	Name    string   `yaml:"name"`
	Entries []string `yaml:"entries"`
}

// Status lists every cache with its entry keys.
func (g *Gateway) Status() ([]CacheStatus, error) {
	names, err := g.storage.Names()
	if err != nil {
		return nil, fmt.Errorf("storage.Names > %w", err)
	}
	statuses := make([]CacheStatus, 0, len(names))
	for _, name := range names {
		cache, err := g.storage.Open(name)
		if err != nil {
			return nil, fmt.Errorf("storage.Open(%s) > %w", name, err)
		}
		keys, err := cache.Keys()
		if err != nil {
			return nil, fmt.Errorf("cache.Keys(%s) > %w", name, err)
		}
		statuses = append(statuses, CacheStatus{Name: name, Entries: keys})
	}
	return statuses, nil
}

// Clear deletes every cache and deactivates the gateway.
func (g *Gateway) Clear() error {
	g.mu.Lock()
	g.active = false
	g.mu.Unlock()

	names, err := g.storage.Names()
	if err != nil {
		return fmt.Errorf("storage.Names > %w", err)
	}
	for _, name := range names {
		if _, err := g.storage.Delete(name); err != nil {
			return fmt.Errorf("storage.Delete(%s) > %w", name, err)
		}
	}
	return nil
}
