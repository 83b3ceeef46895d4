package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      5000,
			CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
			RateLimit: RateLimitConfig{RequestsPerHour: 100},
			Cache:     CacheConfig{TTLMinutes: 30, MaxEntries: 1000},
		},
		Upstreams: UpstreamsConfig{
			DictionaryURL:  "https://api.dictionaryapi.dev/api/v2/entries/en/",
			DatamuseURL:    "https://api.datamuse.com/words",
			PixabayURL:     "https://pixabay.com/api/",
			TimeoutSeconds: 5,
			RetryAttempts:  1,
		},
		Client: ClientConfig{
			BaseURL:        "http://localhost:5000",
			DebounceMillis: 500,
		},
		Store: StoreConfig{
			Driver:     "file",
			Path:       filepath.Join("data", "store.json"),
			SQLitePath: filepath.Join("data", "store.db"),
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "dictlens",
			Username: "user",
		},
		Gateway: GatewayConfig{
			Enabled:      true,
			Directory:    filepath.Join("data", "gateway"),
			APIPrefix:    "/api/",
			StaticCache:  "dictionary-lens-v1",
			DynamicCache: "dictionary-lens-offline-v1",
			StaticAssets: DefaultStaticAssets,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "")
	t.Setenv("DB_PASSWORD", "")

	tests := []struct {
		name              string
		configContent     string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "empty config uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "custom values override defaults",
			configContent: `server:
  port: 8080
  rate_limit:
    requests_per_hour: 0
client:
  base_url: http://dictlens.test
  debounce_ms: 250
  lookup_timeout_seconds: 10
store:
  driver: sqlite
  sqlite_path: custom/store.db
gateway:
  static_cache: dictionary-lens-v2
  static_assets:
    - /
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 8080
				cfg.Server.RateLimit.RequestsPerHour = 0
				cfg.Client = ClientConfig{
					BaseURL:             "http://dictlens.test",
					DebounceMillis:      250,
					LookupTimeoutSecond: 10,
				}
				cfg.Store.Driver = "sqlite"
				cfg.Store.SQLitePath = "custom/store.db"
				cfg.Gateway.StaticCache = "dictionary-lens-v2"
				cfg.Gateway.StaticAssets = []string{"/"}
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 8080
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown store driver",
			configContent: `store:
  driver: redis
`,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [file sqlite mysql memory]"},
		},
		{
			name: "same static and dynamic cache name",
			configContent: `gateway:
  static_cache: shared
  dynamic_cache: shared
`,
			wantErrorContains: []string{"invalid configuration", "dynamic_cache"},
		},
		{
			name: "cache name with a path separator",
			configContent: `gateway:
  static_cache: ../escape
`,
			wantErrorContains: []string{"gateway.static_cache may only contain letters"},
		},
		{
			name: "missing word sheet template file",
			configContent: `templates:
  word_sheet_template: /nonexistent/sheet.md.go.tmpl
`,
			wantErrorContains: []string{"templates.word_sheet_template must be an existing and readable file"},
		},
		{
			name: "api prefix must be absolute",
			configContent: `gateway:
  api_prefix: api/
`,
			wantErrorContains: []string{"invalid configuration", "api_prefix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_LoadSecretsFromEnvironment(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "pixabay-secret")
	t.Setenv("DB_PASSWORD", "db-secret")

	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("upstreams:\n  pixabay_key: from-file\n"), 0644))

	loader, err := NewConfigLoader(configPath)
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "pixabay-secret", got.Upstreams.PixabayKey)
	assert.Equal(t, "db-secret", got.Database.Password)
}

func TestConfigLoader_LoadWithoutConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), got)
}
