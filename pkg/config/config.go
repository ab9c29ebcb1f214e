package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	API      APIConfig      `yaml:"api" json:"api" jsonschema:"description=Hacker News API client configuration"`
	Pager    PagerConfig    `yaml:"pager" json:"pager" jsonschema:"description=Pagination configuration"`
	Retry    RetryConfig    `yaml:"retry" json:"retry" jsonschema:"description=Item fetch retry policy"`
	Feedback FeedbackConfig `yaml:"feedback" json:"feedback" jsonschema:"description=Local feedback store configuration"`
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=HTTP server configuration"`
}

// APIConfig holds remote API settings
type APIConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://hacker-news.firebaseio.com/v0,description=API base URL"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"description=Per request timeout (default 10s)"`
	RateLimit float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=50,minimum=0,description=Requests per second to the API"`
	Burst     int           `yaml:"burst" json:"burst" jsonschema:"default=10,minimum=1,description=Rate limiter burst"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=hnscope/1.0,description=User agent for API requests"`
}

// PagerConfig holds pagination settings shared by all feeds and threads
type PagerConfig struct {
	PageSize      int `yaml:"page_size" json:"page_size" jsonschema:"default=10,minimum=1,maximum=500,description=Items per page"`
	MaxConcurrent int `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=0,minimum=0,description=Maximum concurrent item fetches per page (0 for no limit)"`
}

// RetryConfig holds retry settings for item fetches
type RetryConfig struct {
	Attempts     int           `yaml:"attempts" json:"attempts" jsonschema:"default=3,minimum=1,description=Attempts per item including the first one"`
	InitialDelay time.Duration `yaml:"initial_delay" json:"initial_delay" jsonschema:"description=Initial backoff delay (default 100ms)"`
	MaxDelay     time.Duration `yaml:"max_delay" json:"max_delay" jsonschema:"description=Maximum backoff delay (default 2s)"`
}

// FeedbackConfig holds feedback store settings
type FeedbackConfig struct {
	DSN              string `yaml:"dsn" json:"dsn" jsonschema:"default=file:hnscope.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	Key              string `yaml:"key" json:"key" jsonschema:"default=hnscope:feedback,description=Store key of the feedback record"`
	MaxCommentLength int    `yaml:"max_comment_length" json:"max_comment_length" jsonschema:"default=500,minimum=1,description=Maximum comment length in characters"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"description=HTTP server timeout (default 30s)"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finalize(&cfg)
}

// Default returns configuration with all defaults, used when no config file is given
func Default() *Config {
	cfg, err := finalize(&Config{})
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err)) // only possible if defaults are broken
	}
	return cfg
}

func finalize(cfg *Config) (*Config, error) {
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	// api defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://hacker-news.firebaseio.com/v0"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.API.RateLimit == 0 {
		cfg.API.RateLimit = 50
	}
	if cfg.API.Burst == 0 {
		cfg.API.Burst = 10
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "hnscope/1.0"
	}

	// pager defaults
	if cfg.Pager.PageSize == 0 {
		cfg.Pager.PageSize = 10
	}

	// retry defaults
	if cfg.Retry.Attempts == 0 {
		cfg.Retry.Attempts = 3
	}
	if cfg.Retry.InitialDelay == 0 {
		cfg.Retry.InitialDelay = 100 * time.Millisecond
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = 2 * time.Second
	}

	// feedback defaults
	if cfg.Feedback.DSN == "" {
		cfg.Feedback.DSN = "file:hnscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Feedback.Key == "" {
		cfg.Feedback.Key = "hnscope:feedback"
	}
	if cfg.Feedback.MaxCommentLength == 0 {
		cfg.Feedback.MaxCommentLength = 500
	}

	// server defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate api config
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < 100*time.Millisecond {
		return fmt.Errorf("api.timeout must be at least 100ms")
	}
	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be non-negative")
	}
	if cfg.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1")
	}

	// validate pager config
	if cfg.Pager.PageSize < 1 || cfg.Pager.PageSize > 500 {
		return fmt.Errorf("pager.page_size must be between 1 and 500")
	}
	if cfg.Pager.MaxConcurrent < 0 {
		return fmt.Errorf("pager.max_concurrent must be non-negative")
	}

	// validate retry config
	if cfg.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1")
	}
	if cfg.Retry.MaxDelay < cfg.Retry.InitialDelay {
		return fmt.Errorf("retry.max_delay must not be less than retry.initial_delay")
	}

	// validate feedback config
	if cfg.Feedback.MaxCommentLength < 1 {
		return fmt.Errorf("feedback.max_comment_length must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetPageSize returns the page size shared by all feeds and threads
func (c *Config) GetPageSize() int {
	return c.Pager.PageSize
}
