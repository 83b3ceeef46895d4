// Package gateway is an offline cache placed in front of every outbound HTTP call of the client.
package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

type Config struct {
	// Origin is the base URL of the backend. Requests to any other scheme and host are cross origin.
	Origin       string
	APIPrefix    string
	StaticCache  string
	DynamicCache string
	// StaticAssets are paths relative to Origin or absolute URLs.
	StaticAssets []string
}

type offlineBody struct {
	Error   string `json:"error"`
	Offline bool   `json:"offline"`
}

const offlineMessage = "Offline - no cached data available"

// Gateway implements http.RoundTripper. Until it is activated, it passes every request to the network.
type Gateway struct {
	cfg       Config
	origin    *url.URL
	assetURLs []string
	assets    map[string]struct{}
	storage   Storage
	next      http.RoundTripper
	logger    *slog.Logger
	now       func() time.Time

	mu     sync.RWMutex
	active bool
}

// New creates a gateway sending network requests through next, or http.DefaultTransport when nil.
func New(cfg Config, storage Storage, next http.RoundTripper, logger *slog.Logger) (*Gateway, error) {
	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("url.Parse(%s) > %w", cfg.Origin, err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute URL", cfg.Origin)
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		cfg:     cfg,
		origin:  origin,
		assets:  make(map[string]struct{}),
		storage: storage,
		next:    next,
		logger:  logger,
		now:     time.Now,
	}
	for _, asset := range cfg.StaticAssets {
		ref, err := url.Parse(asset)
		if err != nil {
			return nil, fmt.Errorf("url.Parse(%s) > %w", asset, err)
		}
		resolved := origin.ResolveReference(ref)
		resolved.Fragment = ""
		assetURL := resolved.String()
		if _, ok := g.assets[assetURL]; ok {
			continue
		}
		g.assets[assetURL] = struct{}{}
		g.assetURLs = append(g.assetURLs, assetURL)
	}
	return g, nil
}

// AssetURLs returns the resolved static asset list.
func (g *Gateway) AssetURLs() []string {
	return append([]string(nil), g.assetURLs...)
}

func (g *Gateway) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

func (g *Gateway) RoundTrip(req *http.Request) (*http.Response, error) {
	if !g.Active() || req.Method != http.MethodGet {
		return g.next.RoundTrip(req)
	}

	switch {
	case strings.HasPrefix(req.URL.Path, g.cfg.APIPrefix):
		return g.apiNetworkFirst(req)
	case g.isStaticAsset(req):
		return g.staticCacheFirst(req)
	case !g.sameOrigin(req.URL):
		return g.crossOriginCacheFirst(req)
	default:
		return g.networkFirst(req)
	}
}

func (g *Gateway) isStaticAsset(req *http.Request) bool {
	u := *req.URL
	u.Fragment = ""
	u.RawFragment = ""
	_, ok := g.assets[u.String()]
	return ok
}

func (g *Gateway) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, g.origin.Scheme) && strings.EqualFold(u.Host, g.origin.Host)
}

func (g *Gateway) apiNetworkFirst(req *http.Request) (*http.Response, error) {
	key := RequestKey(req)
	resp, err := g.next.RoundTrip(req)
	if err == nil {
		if isSuccess(resp.StatusCode) {
			g.store(g.cfg.DynamicCache, req, resp)
		}
		return resp, nil
	}
	if ctxErr := req.Context().Err(); ctxErr != nil {
		return nil, err
	}

	g.logger.Info("network failed for an API request", slog.String("key", key), slog.Any("error", err))
	cache, openErr := g.storage.Open(g.cfg.DynamicCache)
	if openErr == nil {
		snapshot, ok, matchErr := cache.Match(key)
		if matchErr != nil {
			g.logger.Warn("failed to read the dynamic cache", slog.String("key", key), slog.Any("error", matchErr))
		}
		if ok {
			return snapshot.response(req, sourceCache), nil
		}
	} else {
		g.logger.Warn("failed to open the dynamic cache", slog.Any("error", openErr))
	}

	body, _ := json.Marshal(offlineBody{Error: offlineMessage, Offline: true})
	header := http.Header{"Content-Type": []string{"application/json"}}
	return newResponse(req, http.StatusServiceUnavailable, header, body, sourceOffline), nil
}

func (g *Gateway) staticCacheFirst(req *http.Request) (*http.Response, error) {
	key := RequestKey(req)
	cache, err := g.storage.Open(g.cfg.StaticCache)
	if err != nil {
		g.logger.Warn("failed to open the static cache", slog.Any("error", err))
	} else if snapshot, ok, err := cache.Match(key); err != nil {
		g.logger.Warn("failed to read the static cache", slog.String("key", key), slog.Any("error", err))
	} else if ok {
		return snapshot.response(req, sourceCache), nil
	}

	resp, err := g.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if isSuccess(resp.StatusCode) {
		g.store(g.cfg.StaticCache, req, resp)
	}
	return resp, nil
}

func (g *Gateway) crossOriginCacheFirst(req *http.Request) (*http.Response, error) {
	if resp, ok := g.matchAny(req); ok {
		return resp, nil
	}

	resp, err := g.next.RoundTrip(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, err
		}
		g.logger.Info("cross origin request failed, returning an empty response",
			slog.String("url", req.URL.String()),
			slog.Any("error", err),
		)
		return newResponse(req, http.StatusOK, nil, nil, sourcePlaceholder), nil
	}
	return resp, nil
}

func (g *Gateway) networkFirst(req *http.Request) (*http.Response, error) {
	resp, err := g.next.RoundTrip(req)
	if err == nil {
		return resp, nil
	}
	if ctxErr := req.Context().Err(); ctxErr != nil {
		return nil, err
	}
	if cached, ok := g.matchAny(req); ok {
		return cached, nil
	}
	return nil, err
}

func (g *Gateway) matchAny(req *http.Request) (*http.Response, bool) {
	key := RequestKey(req)
	snapshot, ok, err := g.storage.Match(key)
	if err != nil {
		g.logger.Warn("failed to read caches", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return snapshot.response(req, sourceCache), true
}

// store snapshots resp into the named cache. Failures are logged and the response is still returned.
func (g *Gateway) store(name string, req *http.Request, resp *http.Response) {
	key := RequestKey(req)
	snapshot, err := takeSnapshot(req, resp, g.now())
	if err != nil {
		g.logger.Warn("failed to snapshot a response", slog.String("key", key), slog.Any("error", err))
		return
	}
	cache, err := g.storage.Open(name)
	if err != nil {
		g.logger.Warn("failed to open a cache", slog.String("cache", name), slog.Any("error", err))
		return
	}
	if err := cache.Put(key, snapshot); err != nil {
		g.logger.Warn("failed to store a snapshot", slog.String("cache", name), slog.String("key", key), slog.Any("error", err))
	}
}
