package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstreams UpstreamsConfig `mapstructure:"upstreams"`
	Client    ClientConfig    `mapstructure:"client"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

type ServerConfig struct {
	Port      int             `mapstructure:"port" validate:"min=1,max=65535"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	// RequestsPerHour is the per client budget. 0 disables rate limiting.
	RequestsPerHour int `mapstructure:"requests_per_hour" validate:"min=0"`
}

type CacheConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes" validate:"min=1"`
	MaxEntries int `mapstructure:"max_entries" validate:"min=1"`
}

type UpstreamsConfig struct {
	DictionaryURL  string `mapstructure:"dictionary_url" validate:"required,url"`
	DatamuseURL    string `mapstructure:"datamuse_url" validate:"required,url"`
	PixabayURL     string `mapstructure:"pixabay_url" validate:"required,url"`
	PixabayKey     string `mapstructure:"pixabay_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
}

type ClientConfig struct {
	BaseURL             string `mapstructure:"base_url" validate:"required,url"`
	DebounceMillis      int    `mapstructure:"debounce_ms" validate:"min=0"`
	LookupTimeoutSecond int    `mapstructure:"lookup_timeout_seconds" validate:"min=0"`
}

type StoreConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=file sqlite mysql memory"`
	Path       string `mapstructure:"path"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type GatewayConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Directory    string   `mapstructure:"directory"`
	APIPrefix    string   `mapstructure:"api_prefix" validate:"startswith=/"`
	StaticCache  string   `mapstructure:"static_cache" validate:"required,cachename"`
	DynamicCache string   `mapstructure:"dynamic_cache" validate:"required,cachename,nefield=StaticCache"`
	StaticAssets []string `mapstructure:"static_assets" validate:"dive,required"`
}

type TemplatesConfig struct {
	WordSheetTemplate string `mapstructure:"word_sheet_template" validate:"omitempty,file"`
}

// DefaultStaticAssets is the asset list pre-cached by the gateway on install.
var DefaultStaticAssets = []string{
	"/",
	"/static/css/style.css",
	"/static/manifest.json",
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dictlens")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit.requests_per_hour", 100)
	v.SetDefault("server.cache.ttl_minutes", 30)
	v.SetDefault("server.cache.max_entries", 1000)
	v.SetDefault("upstreams.dictionary_url", "https://api.dictionaryapi.dev/api/v2/entries/en/")
	v.SetDefault("upstreams.datamuse_url", "https://api.datamuse.com/words")
	v.SetDefault("upstreams.pixabay_url", "https://pixabay.com/api/")
	v.SetDefault("upstreams.timeout_seconds", 5)
	v.SetDefault("upstreams.retry_attempts", 1)
	v.SetDefault("client.base_url", "http://localhost:5000")
	v.SetDefault("client.debounce_ms", 500)
	v.SetDefault("client.lookup_timeout_seconds", 0)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", filepath.Join("data", "store.json"))
	v.SetDefault("store.sqlite_path", filepath.Join("data", "store.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "dictlens")
	v.SetDefault("database.username", "user")
	v.SetDefault("gateway.enabled", true)
	v.SetDefault("gateway.directory", filepath.Join("data", "gateway"))
	v.SetDefault("gateway.api_prefix", "/api/")
	v.SetDefault("gateway.static_cache", "dictionary-lens-v1")
	v.SetDefault("gateway.dynamic_cache", "dictionary-lens-offline-v1")
	v.SetDefault("gateway.static_assets", DefaultStaticAssets)
	// Template is optional - if not specified, the embedded word sheet template is used
	v.SetDefault("templates.word_sheet_template", "")

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("upstreams.pixabay_key", "PIXABAY_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind PIXABAY_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
