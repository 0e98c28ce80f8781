package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// StateDirEnv overrides the directory for the database and the browser profile
const StateDirEnv = "NOTWICE_STATE_DIR"

// Config holds the application configuration
type Config struct {
	Browser BrowserConfig `yaml:"browser" json:"browser" jsonschema:"description=Browser session configuration"`
	Feed    FeedConfig    `yaml:"feed" json:"feed" jsonschema:"description=Feed items and timeline detection"`
	Seen    SeenConfig    `yaml:"seen" json:"seen" jsonschema:"description=Seen posts tracking"`
	Storage StorageConfig `yaml:"storage" json:"storage" jsonschema:"description=Persistent storage for seen posts"`
	Server  ServerConfig  `yaml:"server" json:"server" jsonschema:"description=Local operator API"`
}

// BrowserConfig defines how chrome is started
type BrowserConfig struct {
	StartURL    string        `yaml:"start_url" json:"start_url" jsonschema:"default=https://x.com/home,description=Page opened on start"`
	Headless    bool          `yaml:"headless" json:"headless" jsonschema:"default=false,description=Run chrome without a window"`
	ExecPath    string        `yaml:"exec_path" json:"exec_path" jsonschema:"description=Chrome binary, looked up if empty"`
	UserDataDir string        `yaml:"user_data_dir" json:"user_data_dir" jsonschema:"description=Chrome profile directory, keeps the login between runs"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Navigation and page command timeout"`
}

// FeedConfig defines feed items and timeline views
type FeedConfig struct {
	ItemSelector        string        `yaml:"item_selector" json:"item_selector" jsonschema:"description=CSS selector of a feed item"`
	ProcessedAttr       string        `yaml:"processed_attr" json:"processed_attr" jsonschema:"default=data-processed,description=Attribute marking classified items"`
	VisibilityThreshold float64       `yaml:"visibility_threshold" json:"visibility_threshold" jsonschema:"default=0.5,minimum=0,maximum=1,description=Visible fraction to count a post as seen"`
	Debounce            time.Duration `yaml:"debounce" json:"debounce" jsonschema:"default=100ms,description=Window to coalesce page mutations, negative for immediate passes"`
	TimelinePaths       []string      `yaml:"timeline_paths" json:"timeline_paths" jsonschema:"description=Exact paths of timeline views"`
	TimelineSuffixes    []string      `yaml:"timeline_suffixes" json:"timeline_suffixes" jsonschema:"description=Path suffixes of timeline views"`
	PermalinkBase       string        `yaml:"permalink_base" json:"permalink_base" jsonschema:"default=https://x.com,description=Base url for post links in reports"`
}

// SeenConfig defines the seen posts set
type SeenConfig struct {
	StorageKey string `yaml:"storage_key" json:"storage_key" jsonschema:"default=seenPosts,description=Key of the persisted list"`
	MaxEntries int    `yaml:"max_entries" json:"max_entries" jsonschema:"default=100000,minimum=1,description=Maximum number of tracked posts"`
}

// StorageConfig defines the storage backend
type StorageConfig struct {
	Type            string      `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=redis,description=Storage backend"`
	DSN             string      `yaml:"dsn" json:"dsn" jsonschema:"description=SQLite connection string"`
	MaxOpenConns    int         `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=1,minimum=0,description=Maximum number of open connections"`
	MaxIdleConns    int         `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=1,minimum=0,description=Maximum number of idle connections"`
	ConnMaxLifetime int         `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,minimum=0,description=Connection maximum lifetime in seconds"`
	Redis           RedisConfig `yaml:"redis" json:"redis" jsonschema:"description=Redis backend settings"`
}

// RedisConfig defines the redis backend
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis address"`
	Password string `yaml:"password" json:"password" jsonschema:"description=Redis password (can use environment variable)"`
	DB       int    `yaml:"db" json:"db" jsonschema:"default=0,minimum=0,description=Redis database number"`
	Prefix   string `yaml:"prefix" json:"prefix" jsonschema:"default=notwice:,description=Key prefix"`
}

// ServerConfig defines the local operator API
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"description=HTTP listen address, empty disables the server"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file, empty path means defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

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
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema check is supplementary, validate above is authoritative
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	stateDir, err := StateDir()
	if err != nil {
		lgr.Printf("[WARN] can't get state directory, using current one: %v", err)
		stateDir = "."
	}

	// browser
	if cfg.Browser.StartURL == "" {
		cfg.Browser.StartURL = "https://x.com/home"
	}
	if cfg.Browser.UserDataDir == "" {
		cfg.Browser.UserDataDir = filepath.Join(stateDir, "chrome")
	}
	if cfg.Browser.Timeout == 0 {
		cfg.Browser.Timeout = 30 * time.Second
	}

	// feed
	if cfg.Feed.ItemSelector == "" {
		cfg.Feed.ItemSelector = `article[data-testid="tweet"]`
	}
	if cfg.Feed.ProcessedAttr == "" {
		cfg.Feed.ProcessedAttr = "data-processed"
	}
	if cfg.Feed.VisibilityThreshold == 0 {
		cfg.Feed.VisibilityThreshold = 0.5
	}
	if cfg.Feed.Debounce == 0 {
		cfg.Feed.Debounce = 100 * time.Millisecond
	}
	if len(cfg.Feed.TimelinePaths) == 0 && len(cfg.Feed.TimelineSuffixes) == 0 {
		cfg.Feed.TimelinePaths = []string{"/", "/home", "/explore"}
		cfg.Feed.TimelineSuffixes = []string{"/for-you"}
	}
	if cfg.Feed.PermalinkBase == "" {
		cfg.Feed.PermalinkBase = "https://x.com"
	}

	// seen
	if cfg.Seen.StorageKey == "" {
		cfg.Seen.StorageKey = "seenPosts"
	}
	if cfg.Seen.MaxEntries == 0 {
		cfg.Seen.MaxEntries = 100000
	}

	// storage
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "sqlite"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "file:" + filepath.Join(stateDir, "notwice.db") + "?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Storage.MaxOpenConns == 0 {
		cfg.Storage.MaxOpenConns = 1
	}
	if cfg.Storage.MaxIdleConns == 0 {
		cfg.Storage.MaxIdleConns = 1
	}
	if cfg.Storage.ConnMaxLifetime == 0 {
		cfg.Storage.ConnMaxLifetime = 3600
	}
	if cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = "localhost:6379"
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = "notwice:"
	}

	// server
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Feed.VisibilityThreshold <= 0 || cfg.Feed.VisibilityThreshold > 1 {
		return errors.New("feed.visibility_threshold must be in (0, 1]")
	}
	for _, p := range cfg.Feed.TimelinePaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("feed.timeline_paths entry %q must start with /", p)
		}
	}
	if cfg.Seen.MaxEntries < 1 {
		return errors.New("seen.max_entries must be at least 1")
	}
	switch cfg.Storage.Type {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("storage.type %q is not supported, use sqlite or redis", cfg.Storage.Type)
	}
	if cfg.Browser.Timeout < time.Second {
		return errors.New("browser timeout must be at least 1 second")
	}
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	return nil
}

// StateDir returns the directory for the database and the browser profile.
// Resolution order: NOTWICE_STATE_DIR, XDG_STATE_HOME/notwice, os.UserConfigDir()/notwice.
func StateDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(StateDirEnv)); dir != "" {
		return filepath.Clean(dir), nil
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return filepath.Join(xdg, "notwice"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(base, "notwice"), nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
