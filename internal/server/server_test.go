package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/lookup"
)

type lookupFunc func(ctx context.Context, word string) (lookup.Result, error)

func (f lookupFunc) Lookup(ctx context.Context, word string) (lookup.Result, error) {
	return f(ctx, word)
}

func appleLookup(ctx context.Context, word string) (lookup.Result, error) {
	return lookup.Result{
		Definition: &lookup.Entry{Word: word},
		Synonyms:   []lookup.RelatedWord{},
		Antonyms:   []lookup.RelatedWord{},
		Images:     []string{},
	}, nil
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:      5000,
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{RequestsPerHour: 100},
		Cache:     config.CacheConfig{TTLMinutes: 30, MaxEntries: 1000},
	}
}

func serve(t *testing.T, handler http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		req.Header[key] = values
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Routes(t *testing.T) {
	tests := []struct {
		name            string
		words           lookupFunc
		method          string
		target          string
		wantStatus      int
		wantBody        string
		wantContentType string
	}{
		{
			name:            "word lookup",
			words:           appleLookup,
			method:          http.MethodGet,
			target:          "/api/word/Apple",
			wantStatus:      http.StatusOK,
			wantBody:        `{"definition":{"word":"apple","meanings":null},"synonyms":[],"antonyms":[],"images":[]}`,
			wantContentType: "application/json",
		},
		{
			name:       "word too long",
			method:     http.MethodGet,
			target:     "/api/word/aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Word too long (max 50 characters)"}`,
		},
		{
			name:       "invalid characters",
			method:     http.MethodGet,
			target:     "/api/word/abc123",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid word format. Only letters, hyphens, and apostrophes allowed."}`,
		},
		{
			name:       "lookup failure",
			words:      func(ctx context.Context, word string) (lookup.Result, error) { return lookup.Result{}, errors.New("boom") },
			method:     http.MethodGet,
			target:     "/api/word/apple",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
		{
			name:       "panic is recovered",
			words:      func(ctx context.Context, word string) (lookup.Result, error) { panic("unexpected") },
			method:     http.MethodGet,
			target:     "/api/word/apple",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
		{
			name:       "unknown endpoint",
			method:     http.MethodGet,
			target:     "/api/unknown",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Endpoint not found"}`,
		},
		{
			name:       "missing word",
			method:     http.MethodGet,
			target:     "/api/word/",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Endpoint not found"}`,
		},
		{
			name:       "unknown static file",
			method:     http.MethodGet,
			target:     "/static/missing.js",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Endpoint not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testServerConfig(), tt.words, nil)
			rec := serve(t, s.Handler(), tt.method, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			if tt.wantContentType != "" {
				assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
			}
			_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
			assert.NoError(t, err)
		})
	}
}

func TestServer_StaticAssets(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		wantContentType string
		wantContains    string
	}{
		{name: "index", target: "/", wantContentType: "text/html; charset=utf-8", wantContains: "Dictionary Lens"},
		{name: "stylesheet", target: "/static/css/style.css", wantContentType: "text/css; charset=utf-8", wantContains: "font-family"},
		{name: "manifest", target: "/static/manifest.json", wantContentType: "application/json", wantContains: `"start_url": "/"`},
	}

	handler := New(testServerConfig(), lookupFunc(appleLookup), nil).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, handler, http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantContains)
			// static assets are not API routes
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimit.RequestsPerHour = 2
	handler := New(cfg, lookupFunc(appleLookup), nil).Handler()

	for range 2 {
		rec := serve(t, handler, http.MethodGet, "/api/word/apple", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := serve(t, handler, http.MethodGet, "/api/word/apple", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, errorBody{
		Error:   "Rate limit exceeded. Please wait before making more requests.",
		Message: "You've reached the maximum of 2 requests per hour.",
	}, body)

	// another client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/api/word/apple", nil)
	req.RemoteAddr = "203.0.113.7:4321"
	other := httptest.NewRecorder()
	handler.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)

	// static assets do not count against the budget
	rec = serve(t, handler, http.MethodGet, "/static/manifest.json", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RateLimitDisabled(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimit.RequestsPerHour = 0
	handler := New(cfg, lookupFunc(appleLookup), nil).Handler()

	for range 5 {
		rec := serve(t, handler, http.MethodGet, "/api/word/apple", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestServer_CORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		method         string
		origin         string
		wantStatus     int
		wantAllow      string
		wantMethods    string
	}{
		{
			name:           "any origin",
			allowedOrigins: []string{"*"},
			method:         http.MethodGet,
			origin:         "http://example.com",
			wantStatus:     http.StatusOK,
			wantAllow:      "*",
		},
		{
			name:           "listed origin is echoed",
			allowedOrigins: []string{"http://localhost:3000"},
			method:         http.MethodGet,
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusOK,
			wantAllow:      "http://localhost:3000",
		},
		{
			name:           "unlisted origin",
			allowedOrigins: []string{"http://localhost:3000"},
			method:         http.MethodGet,
			origin:         "http://evil.test",
			wantStatus:     http.StatusOK,
		},
		{
			name:           "preflight",
			allowedOrigins: []string{"*"},
			method:         http.MethodOptions,
			origin:         "http://example.com",
			wantStatus:     http.StatusNoContent,
			wantAllow:      "*",
			wantMethods:    "GET, OPTIONS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServerConfig()
			cfg.CORS.AllowedOrigins = tt.allowedOrigins
			handler := New(cfg, lookupFunc(appleLookup), nil).Handler()

			rec := serve(t, handler, tt.method, "/api/word/apple", http.Header{"Origin": []string{tt.origin}})
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestServer_RequestIDInContext(t *testing.T) {
	var seen string
	handler := New(testServerConfig(), lookupFunc(func(ctx context.Context, word string) (lookup.Result, error) {
		seen = RequestID(ctx)
		return appleLookup(ctx, word)
	}), nil).Handler()

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/word/apple")
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, resp.Header.Get(RequestIDHeader))
}
